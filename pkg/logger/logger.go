// pkg/logger/logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// L returns the global logger, initialising a console fallback on first use.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}
	InitFallback()
	return L()
}

// SetLogger installs l as the global zap and otelzap logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// InitFallback installs a console-only logger on stderr.
func InitFallback() {
	SetLogger(NewConsoleLogger(os.Stderr, ParseLogLevel(os.Getenv("LOG_LEVEL"))))
}

// NewConsoleLogger builds a human-readable logger writing to w.
func NewConsoleLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeInteractive tees warnings to the console and everything at
// level or above to a JSON log file. Without a writable log path the
// console receives all entries instead.
func InitializeInteractive(level zapcore.Level) {
	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		SetLogger(NewConsoleLogger(os.Stderr, level))
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
		SetLogger(NewConsoleLogger(os.Stderr, level))
		return
	}

	consoleLevel := zapcore.WarnLevel
	if level < consoleLevel {
		consoleLevel = level
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(DefaultJSONEncoderConfig()), writer, level),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SetLogger(l)
	l.Debug("Logger initialized",
		zap.String("log_level", level.String()),
		zap.String("log_path", path))
}

// InitializeDetached logs everything as JSON to stdout. The background
// push process has its stdout attached to the push log by the supervisor.
func InitializeDetached(level zapcore.Level) {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(DefaultJSONEncoderConfig()),
		zapcore.Lock(os.Stdout),
		level,
	)
	SetLogger(zap.New(core, zap.AddCaller()))
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func DefaultJSONEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// ParseLogLevel maps LOG_LEVEL style names to zap levels, defaulting to info.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG", "trace", "debug":
		return zapcore.DebugLevel
	case "WARN", "warn":
		return zapcore.WarnLevel
	case "ERROR", "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
