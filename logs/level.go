// Package logs is a small leveled-logging backend, reproduced from its
// call sites in logger.Logger (Tracef/Debugf/Infof/Warnf/Errorf/
// Criticalf, SetLevel) and in logger.go's NewBackend/BackendWriter
// construction. The upstream github.com/daglabs/btcd/logs package was
// filtered out of this retrieval slice; nothing here is fabricated
// beyond what those call sites require.
package logs

import "strings"

// Level is a logging severity.
type Level uint32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrings = map[Level]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
	LevelOff:      "OFF",
}

// String returns the three-letter tag for l.
func (l Level) String() string {
	if s, ok := levelStrings[l]; ok {
		return s
	}
	return "UNK"
}

// LevelFromString parses a level name, defaulting to LevelInfo for an
// unrecognized string, as logger.SetLogLevel relies on.
func LevelFromString(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "critical":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}
