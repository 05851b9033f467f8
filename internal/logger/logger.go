// Package logger wraps zap behind a small package-level API so the rest of
// the service logs through one configured instance.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings mirrors the log section of the service config.
type Settings struct {
	Level  string
	Output string // stdout, stderr, file
	File   string
}

var log = zap.Must(zap.NewProduction()).Sugar()

// Init replaces the default logger with one built from settings. File output
// rotates via lumberjack.
func Init(s Settings) error {
	level, err := zapcore.ParseLevel(strings.ToLower(s.Level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", s.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	var sink zapcore.WriteSyncer
	switch s.Output {
	case "file":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	case "stderr":
		sink = zapcore.AddSync(os.Stderr)
	default:
		sink = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(encoder, sink, level)
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	return nil
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	_ = log.Sync()
}

func Debug(format string, args ...interface{}) { log.Debugf(format, args...) }
func Info(format string, args ...interface{})  { log.Infof(format, args...) }
func Warn(format string, args ...interface{})  { log.Warnf(format, args...) }
func Error(format string, args ...interface{}) { log.Errorf(format, args...) }
func Fatal(format string, args ...interface{}) { log.Fatalf(format, args...) }
