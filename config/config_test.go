package config

import (
	"testing"

	"simcore-go/logx"
)

func TestLoadClassroomProfile(t *testing.T) {
	p, err := Load("classroom")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.EventQueue != 32 || p.MaxSubscribers != 8 {
		t.Fatalf("bus sizing = %d/%d, want 32/8", p.EventQueue, p.MaxSubscribers)
	}
	if p.LogQueue != 32 || p.MaxMessage != 128 || p.DisplayLines != 10 {
		t.Fatalf("log sizing = %d/%d/%d, want 32/128/10", p.LogQueue, p.MaxMessage, p.DisplayLines)
	}
	if got := p.Level(); got != logx.Info {
		t.Fatalf("Level = %v, want info", got)
	}
	tc := p.TelemetryConfig()
	if tc.TickPeriodMs != 1000 || tc.OverTempDeciC != 450 {
		t.Fatalf("telemetry config = %+v", tc)
	}
}

func TestLoadDefaultsToClassroom(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != DefaultProfile {
		t.Fatalf("Name = %q, want %q", p.Name, DefaultProfile)
	}
}

func TestLoadUnknownProfile(t *testing.T) {
	if _, err := Load("lab-42"); err == nil {
		t.Fatal("Load of an unknown profile succeeded")
	}
}

func TestLookupOverride(t *testing.T) {
	orig := EmbeddedProfileLookup
	t.Cleanup(func() { EmbeddedProfileLookup = orig })

	EmbeddedProfileLookup = func(name string) ([]byte, bool) {
		if name != "custom" {
			return nil, false
		}
		return []byte(`{"event_queue": 7, "log_level": "error"}`), true
	}

	p, err := Load("custom")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.EventQueue != 7 {
		t.Fatalf("EventQueue = %d, want 7", p.EventQueue)
	}
	if got := p.Level(); got != logx.Error {
		t.Fatalf("Level = %v, want error", got)
	}
	// Unset fields stay zero so the core defaults apply downstream.
	if bc := p.BusConfig(); bc.MaxSubscribers != 0 {
		t.Fatalf("MaxSubscribers = %d, want 0", bc.MaxSubscribers)
	}
}

func TestLoadMalformedProfile(t *testing.T) {
	orig := EmbeddedProfileLookup
	t.Cleanup(func() { EmbeddedProfileLookup = orig })
	EmbeddedProfileLookup = func(string) ([]byte, bool) {
		return []byte(`[1, 2, 3]`), true
	}
	if _, err := Load("anything"); err == nil {
		t.Fatal("Load of a non-object profile succeeded")
	}
}
