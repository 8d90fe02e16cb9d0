package logs

import (
	"io"
	"sync"
	"time"
)

// BackendWriter is an output sink plus the minimum level it accepts,
// letting a Backend fan a single log line out to stdout, an
// all-levels rotator, and an errors-only rotator simultaneously.
type BackendWriter struct {
	w        io.Writer
	minLevel Level
}

// NewAllLevelsBackendWriter wraps w to receive every log line regardless
// of level.
func NewAllLevelsBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelTrace}
}

// NewErrorBackendWriter wraps w to receive only LevelWarn and above.
func NewErrorBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelWarn}
}

// Backend fans out formatted log lines to its writers and mints
// per-subsystem Loggers that all share those writers.
type Backend struct {
	mu      sync.Mutex
	writers []*BackendWriter
}

// NewBackend returns a Backend writing to the given writers.
func NewBackend(writers []*BackendWriter) *Backend {
	return &Backend{writers: writers}
}

// Logger mints a tagged Logger sharing this backend's writers, starting
// at LevelInfo.
func (b *Backend) Logger(tag string) Logger {
	return &logger{backend: b, tag: tag, level: uint32(LevelInfo)}
}

// write formats and dispatches one log line to every writer whose
// minLevel accepts it.
func (b *Backend) write(level Level, tag, msg string) {
	line := []byte(time.Now().Format("2006-01-02 15:04:05.000") + " [" + level.String() + "] " + tag + ": " + msg + "\n")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.writers {
		if level >= w.minLevel {
			w.w.Write(line)
		}
	}
}
