package logs

import (
	"fmt"
	"sync/atomic"
)

// Logger is a tagged, leveled logger sharing a Backend's writers.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})
	SetLevel(level Level)
	Level() Level
}

type logger struct {
	backend *Backend
	tag     string
	level   uint32
}

func (l *logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

func (l *logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

func (l *logger) log(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.backend.write(level, l.tag, fmt.Sprintf(format, args...))
}

func (l *logger) Tracef(format string, args ...interface{})    { l.log(LevelTrace, format, args...) }
func (l *logger) Debugf(format string, args ...interface{})    { l.log(LevelDebug, format, args...) }
func (l *logger) Infof(format string, args ...interface{})     { l.log(LevelInfo, format, args...) }
func (l *logger) Warnf(format string, args ...interface{})     { l.log(LevelWarn, format, args...) }
func (l *logger) Errorf(format string, args ...interface{})    { l.log(LevelError, format, args...) }
func (l *logger) Criticalf(format string, args ...interface{}) { l.log(LevelCritical, format, args...) }
