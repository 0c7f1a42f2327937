// Package logging writes structured logs to a file. The terminal belongs
// to the viewer, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu        sync.Mutex
	logger    = zap.NewNop()
	closeSink = func() {}
	filePath  string
)

// ParseLevel parses debug, info, warn or error
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// Initialize sets up the package logger writing JSON lines to a dated file
// in logDir.
func Initialize(logDir string, level zapcore.Level) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(logDir, fmt.Sprintf("colgrep-%s.log", time.Now().Format("2006-01-02")))

	sink, closeFn, err := zap.Open(path)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)

	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	closeSink()
	logger = zap.New(core, zap.ErrorOutput(sink))
	closeSink = closeFn
	filePath = path
	return nil
}

// L returns the package logger. It discards everything until Initialize
// succeeds.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return filePath
}

// Close flushes the logger and reverts to the no-op logger
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	err := logger.Sync()
	closeSink()
	logger = zap.NewNop()
	closeSink = func() {}
	filePath = ""
	return err
}
