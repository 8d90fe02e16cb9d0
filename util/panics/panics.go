// Package panics provides goroutine-spawning helpers that recover and
// log panics instead of crashing the whole node, matching the teacher's
// util/panics package.
package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/ZhuZhengyi/blockchain-go/logs"
)

const panicHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic and logs it along with the given goroutine
// stack trace; the process keeps running.
func HandlePanic(log logs.Logger, goroutineStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		log.Criticalf("Fatal error: %+v", err)
		if goroutineStackTrace != nil {
			log.Criticalf("Goroutine stack trace: %s", goroutineStackTrace)
		}
		log.Criticalf("Stack trace: %s", debug.Stack())
		close(done)
	}()

	select {
	case <-time.After(panicHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't log a recovered panic.")
	case <-done:
	}
}

// GoroutineWrapperFunc returns a function that spawns f in a new
// goroutine, recovering and logging any panic instead of crashing the
// process.
func GoroutineWrapperFunc(log logs.Logger) func(func()) {
	return func(f func()) {
		stackTrace := debug.Stack()
		go func() {
			defer HandlePanic(log, stackTrace)
			f()
		}()
	}
}

// Exit logs reason as the exit cause and terminates the process.
func Exit(log logs.Logger, reason string) {
	done := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		close(done)
	}()

	select {
	case <-time.After(panicHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-done:
	}
	os.Exit(1)
}
