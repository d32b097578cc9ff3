// simdash is the host dashboard: a terminal front-end whose log panel is
// the notification core's attached display sink and whose Elm loop is
// the host run-loop driving Tick/Process/Flush.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"simcore-go/config"
)

var rootCmd = &cobra.Command{
	Use:   "simdash",
	Short: "Terminal dashboard for the simulator core",
	Long: `Simdash renders the simulator's rolling log panel, sensor gauges and
board state in the terminal. Keys drive the simulated LEDs, buttons and
potentiometer; the dashboard's frame tick doubles as the host run-loop
that drains the event and log queues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := config.Load(viper.GetString("profile"))
		if err != nil {
			return err
		}
		m := newModel(prof)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("profile", "p", "",
		"simulator profile ("+strings.Join(config.ProfileNames(), ", ")+")")
	rootCmd.Flags().StringP("level", "l", "", "log level override (error, warn, info, debug, verbose)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default simdash.yaml in . or $HOME/.config/simdash)")
	_ = viper.BindPFlag("profile", rootCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("log_level", rootCmd.Flags().Lookup("level"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("simdash")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/simdash")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SIMDASH")

	// Config file is optional; a change to it is picked up on the next
	// frame tick (the Elm loop polls, nothing mutates cross-goroutine).
	if err := viper.ReadInConfig(); err == nil {
		viper.WatchConfig()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
