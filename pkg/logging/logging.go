// Package logging sets up the process-wide zerolog logger.
//
// Records go to a human readable console writer and, when it can be
// opened, to an append-only file under the XDG state directory. The -v
// count selects the level: warnings by default, then info, debug, trace.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file path relative to the XDG state directory
const LogFileName = "resman/resman.log"

var (
	mu      sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger, writing to stderr and the log file
func SetupLogger(verbosity int) {
	SetupLoggerWithOutput(verbosity, os.Stderr)
}

// SetupLoggerWithOutput is SetupLogger with an explicit console writer.
// Calling it again replaces the previous configuration and log file handle.
func SetupLoggerWithOutput(verbosity int, console io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(verbosity))

	sinks := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	path := LogFilePath()
	file, fileErr := openLogFile(path)
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	if file != nil {
		sinks = append(sinks, file)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// LevelFor maps a -v count to a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	levels := []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel}
	if verbosity < 0 {
		return zerolog.WarnLevel
	}
	if verbosity < len(levels) {
		return levels[verbosity]
	}
	return zerolog.TraceLevel
}

// LogFilePath returns where the log file is written
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, LogFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Timed logs the start of operation at debug level and returns a func that
// logs its duration. Use as: defer logging.Timed(logger, "build")()
func Timed(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
