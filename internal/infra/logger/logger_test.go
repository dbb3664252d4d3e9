package logger

import "testing"

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "INFO", " warn ", "error"} {
		log, err := New(level, "json")
		if err != nil {
			t.Fatalf("new logger for %q: %v", level, err)
		}
		_ = log.Sync()
	}
}

func TestNewConsoleFormat(t *testing.T) {
	log, err := New("debug", "console")
	if err != nil {
		t.Fatalf("new console logger: %v", err)
	}
	if !log.Core().Enabled(-1) {
		t.Fatal("expected debug level enabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
