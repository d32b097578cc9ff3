package config

// Embedded profiles, keyed by name. Raw JSON so a build step or a test
// can swap the set wholesale through EmbeddedProfileLookup.

// classroom mirrors the capacities used in the course material.
const profileClassroom = `{
  "event_queue": 32,
  "max_subscribers": 8,
  "log_queue": 32,
  "max_message": 128,
  "display_lines": 10,
  "log_level": "info",
  "tick_period_ms": 1000,
  "sensor_period_ms": 250,
  "motion_period_ms": 100,
  "over_temp_decic": 450,
  "low_light_pct": 10
}`

// bench shrinks every bound so overflow paths are easy to reach by hand.
const profileBench = `{
  "event_queue": 4,
  "max_subscribers": 2,
  "log_queue": 2,
  "max_message": 48,
  "display_lines": 3,
  "log_level": "verbose",
  "tick_period_ms": 200,
  "sensor_period_ms": 100,
  "motion_period_ms": 50,
  "over_temp_decic": 300,
  "low_light_pct": 25
}`

// soak runs quiet and slow for long demos.
const profileSoak = `{
  "event_queue": 64,
  "max_subscribers": 8,
  "log_queue": 64,
  "max_message": 128,
  "display_lines": 20,
  "log_level": "warn",
  "tick_period_ms": 5000,
  "sensor_period_ms": 1000,
  "motion_period_ms": 500,
  "over_temp_decic": 450,
  "low_light_pct": 10
}`

var embeddedProfiles = map[string][]byte{
	"classroom": []byte(profileClassroom),
	"bench":     []byte(profileBench),
	"soak":      []byte(profileSoak),
}

// ProfileNames lists the embedded profile names for help output.
func ProfileNames() []string {
	return []string{"classroom", "bench", "soak"}
}
