// Package logger provides the structured logger shared by the scan
// coordinator, the workers, and the CLI commands.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. Until Initialize runs it is a no-op
// logger that discards every entry.
var Log = zap.NewNop()

// SugaredLog is a sugared logger for printf-style logging.
var SugaredLog = Log.Sugar()

// Initialize sets up the structured logger with file rotation.
// logLevel: "debug", "info", "warn", "error" (default: "info")
// logFile: path to log file (default: "sonicindex.log")
func Initialize(logLevel string, logFile string) error {
	if logFile == "" {
		logFile = "sonicindex.log"
	}
	if logLevel == "" {
		logLevel = "info"
	}

	level := parseLogLevel(logLevel)

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	})

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())

	jsonEncoderConfig := zap.NewProductionEncoderConfig()
	jsonEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonEncoder := zapcore.NewJSONEncoder(jsonEncoderConfig)

	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)
	fileCore := zapcore.NewCore(jsonEncoder, fileWriter, level)
	core := zapcore.NewTee(consoleCore, fileCore)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SugaredLog = Log.Sugar()

	Log.Info("logger initialized", zap.String("level", logLevel), zap.String("file", logFile))
	return nil
}

// Close flushes the logger before shutdown.
func Close() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}

func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InfoWithFields logs an info message with structured fields.
func InfoWithFields(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// WarnWithFields logs a warning message with an error.
func WarnWithFields(msg string, err error) {
	if err != nil {
		Log.Warn(msg, zap.Error(err))
	} else {
		Log.Warn(msg)
	}
}

// ErrorWithFields logs an error message with an error.
func ErrorWithFields(msg string, err error) {
	if err != nil {
		Log.Error(msg, zap.Error(err))
	} else {
		Log.Error(msg)
	}
}

// Error logs an error with structured fields.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// DebugWithFields logs a debug message with structured fields.
func DebugWithFields(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// FatalWithFields logs a fatal error and exits.
func FatalWithFields(msg string, err error) {
	if err != nil {
		Log.Fatal(msg, zap.Error(err))
	} else {
		Log.Fatal(msg)
	}
}

func Infof(format string, args ...interface{}) {
	SugaredLog.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	SugaredLog.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	SugaredLog.Errorf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	SugaredLog.Debugf(format, args...)
}

// WithPath is a zap field for the file path a pipeline stage is operating on.
func WithPath(path string) zap.Field {
	return zap.String("path", path)
}

// WithStage is a zap field identifying a pipeline stage ("decode",
// "fingerprint", "features", "genre", "tags", "lookup").
func WithStage(stage string) zap.Field {
	return zap.String("stage", stage)
}

// WithDuration is a zap field for a stage's elapsed time.
func WithDuration(d interface{}) zap.Field {
	return zap.Any("duration", d)
}

// WithCount is a zap field for a generic integer count (files, chunk size,
// merges since checkpoint).
func WithCount(name string, n int) zap.Field {
	return zap.Int(name, n)
}

// WithRequestID is a zap field correlating log lines to one HTTP request.
func WithRequestID(requestID string) zap.Field {
	return zap.String("request_id", requestID)
}
