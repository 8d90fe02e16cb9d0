package logs

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	backend := NewBackend([]*BackendWriter{NewAllLevelsBackendWriter(&buf)})
	log := backend.Logger("TEST")
	log.SetLevel(LevelWarn)

	log.Debugf("should not appear")
	log.Warnf("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatal("debug line should have been filtered")
	}
	if !strings.Contains(out, "should appear") {
		t.Fatal("warn line missing from output")
	}
}

func TestErrorBackendWriterOnlyReceivesWarnAndAbove(t *testing.T) {
	var all, errs bytes.Buffer
	backend := NewBackend([]*BackendWriter{
		NewAllLevelsBackendWriter(&all),
		NewErrorBackendWriter(&errs),
	})
	log := backend.Logger("TEST")
	log.SetLevel(LevelTrace)

	log.Infof("info line")
	log.Errorf("error line")

	if !strings.Contains(all.String(), "info line") {
		t.Fatal("all-levels writer missing info line")
	}
	if strings.Contains(errs.String(), "info line") {
		t.Fatal("error writer should not receive info line")
	}
	if !strings.Contains(errs.String(), "error line") {
		t.Fatal("error writer missing error line")
	}
}

func TestLevelFromString(t *testing.T) {
	level, ok := LevelFromString("warn")
	if !ok || level != LevelWarn {
		t.Fatalf("LevelFromString(warn) = %v, %v; want LevelWarn, true", level, ok)
	}

	level, ok = LevelFromString("bogus")
	if ok || level != LevelInfo {
		t.Fatalf("LevelFromString(bogus) = %v, %v; want LevelInfo, false", level, ok)
	}
}
