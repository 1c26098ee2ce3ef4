// Package logger holds the process-wide structured logger.
package logger

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	sugar.Store(zap.NewNop().Sugar())
}

// Init builds the logger. level is a zap level name ("debug", "info", ...)
// and falls back to info; format "console" selects the human-readable
// development encoder, anything else writes JSON. When outputDir is set, logs
// are also appended to outputDir/app.log.
func Init(level, format, outputDir string) error {
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	}
	cfg.Level = logLevel
	cfg.OutputPaths = []string{"stdout"}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, filepath.Join(outputDir, "app.log"))
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	sugar.Store(l.Sugar())
	return nil
}

// Set replaces the logger, mainly for tests that want to observe output.
func Set(l *zap.Logger) {
	sugar.Store(l.Sugar())
}

// L returns the current sugared logger.
func L() *zap.SugaredLogger {
	return sugar.Load()
}

func Info(msg string) {
	L().Info(msg)
}

func Infof(template string, args ...interface{}) {
	L().Infof(template, args...)
}

// Infow logs msg with alternating key/value context.
func Infow(msg string, keysAndValues ...interface{}) {
	L().Infow(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	L().Debugw(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	L().Warnf(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	L().Warnw(msg, keysAndValues...)
}

// Error logs msg with err attached under the "error" key.
func Error(msg string, err error) {
	L().Errorw(msg, "error", err)
}

func Errorf(template string, args ...interface{}) {
	L().Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	L().Fatalf(template, args...)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	_ = L().Sync()
}
