// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logger wires up per-subsystem loggers for this node, and the
// log-rotating file backends they write to (spec.md's AMBIENT STACK).
// Grounded on the teacher's logger/logger.go, trimmed to this domain's
// subsystems.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jrick/logrotate/rotator"

	"github.com/ZhuZhengyi/blockchain-go/logs"
)

// logWriter implements an io.Writer that outputs to both standard output
// and the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	if initiated {
		os.Stdout.Write(p)
		LogRotator.Write(p)
	}
	return len(p), nil
}

// errLogWriter implements an io.Writer that outputs to both standard
// output and the write-end pipe of an initialized error log rotator.
type errLogWriter struct{}

func (errLogWriter) Write(p []byte) (n int, err error) {
	if initiated {
		os.Stdout.Write(p)
		ErrLogRotator.Write(p)
	}
	return len(p), nil
}

// Loggers can not be used before the log rotator has been initialized
// with a log file. This must be performed early during application
// startup by calling InitLogRotators.
var (
	backendLog = logs.NewBackend([]*logs.BackendWriter{
		logs.NewAllLevelsBackendWriter(logWriter{}),
		logs.NewErrorBackendWriter(errLogWriter{}),
	})

	// LogRotator is one of the logging outputs. It should be closed on
	// application shutdown.
	LogRotator    *rotator.Rotator
	ErrLogRotator *rotator.Rotator

	bcdbLog = backendLog.Logger("BCDB") // chain store
	utxiLog = backendLog.Logger("UTXI") // utxo index
	txmpLog = backendLog.Logger("TXMP") // mempool
	srvrLog = backendLog.Logger("SRVR") // p2p server
	peerLog = backendLog.Logger("PEER") // peer set
	minrLog = backendLog.Logger("MINR") // mining
	cnfgLog = backendLog.Logger("CNFG") // config
	wlltLog = backendLog.Logger("WLLT") // wallet
	btcdLog = backendLog.Logger("BTCD") // top-level / cmd

	initiated = false
)

// SubsystemTags is an enum of all subsystem tags.
var SubsystemTags = struct {
	BCDB,
	UTXI,
	TXMP,
	SRVR,
	PEER,
	MINR,
	CNFG,
	WLLT,
	BTCD string
}{
	BCDB: "BCDB",
	UTXI: "UTXI",
	TXMP: "TXMP",
	SRVR: "SRVR",
	PEER: "PEER",
	MINR: "MINR",
	CNFG: "CNFG",
	WLLT: "WLLT",
	BTCD: "BTCD",
}

// subsystemLoggers maps each subsystem identifier to its associated
// logger.
var subsystemLoggers = map[string]logs.Logger{
	SubsystemTags.BCDB: bcdbLog,
	SubsystemTags.UTXI: utxiLog,
	SubsystemTags.TXMP: txmpLog,
	SubsystemTags.SRVR: srvrLog,
	SubsystemTags.PEER: peerLog,
	SubsystemTags.MINR: minrLog,
	SubsystemTags.CNFG: cnfgLog,
	SubsystemTags.WLLT: wlltLog,
	SubsystemTags.BTCD: btcdLog,
}

// InitLogRotators initializes the logging rotators to write logs to
// logFile, errLogFile, and create roll files in the same directory. It
// must be called before the package-global log rotator variables are
// used.
func InitLogRotators(logFile, errLogFile string) {
	initiated = true
	LogRotator = initLogRotator(logFile)
	ErrLogRotator = initLogRotator(errLogFile)
}

func initLogRotator(logFile string) *rotator.Rotator {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %s\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %s\n", err)
		os.Exit(1)
	}
	return r
}

// SetLogLevel sets the logging level for the given subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := logs.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for every subsystem logger.
func SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// Get returns the logger for a specific subsystem.
func Get(tag string) (logger logs.Logger, ok bool) {
	logger, ok = subsystemLoggers[tag]
	return
}

// ParseAndSetDebugLevels parses the specified debug level string and
// sets the levels accordingly. It accepts either a single level applied
// to every subsystem, or a comma-separated list of SUBSYSTEM=level
// pairs.
func ParseAndSetDebugLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if _, exists := Get(subsysID); !exists {
			return fmt.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %s",
				subsysID, strings.Join(SupportedSubsystems(), ", "))
		}
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", logLevel)
		}
		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}
