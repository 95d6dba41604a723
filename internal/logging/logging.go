// Package logging builds the zap logger used across infradocs.
// The TUI owns the terminal while it runs, so logs normally go to a rotated
// file; command-line runs can additionally mirror them to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logger configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Format is the output format (json, text)
	Format string `yaml:"format" json:"format"`
	// File is the log file path; empty disables file output
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// MaxSize is the size in megabytes before the file is rotated
	MaxSize int `yaml:"max_size,omitempty" json:"max_size,omitempty"`
	// MaxAge is the number of days to keep rotated files
	MaxAge int `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	// MaxBackups is the number of rotated files to keep
	MaxBackups int  `yaml:"max_backups,omitempty" json:"max_backups,omitempty"`
	Compress   bool `yaml:"compress,omitempty" json:"compress,omitempty"`
	// Stderr mirrors log output to stderr
	Stderr bool `yaml:"-" json:"-"`
}

// DefaultConfig returns file logging at info level
func DefaultConfig(file string) Config {
	return Config{
		Level:      "info",
		Format:     "text",
		File:       file,
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
	}
}

// ParseLevel converts a level name into a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
}

// New builds a logger from cfg. With neither a file nor stderr configured the
// logger discards everything.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoder := newEncoder(cfg.Format)

	var cores []zapcore.Core
	if cfg.Stderr {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("log directory create failed: %w", err)
		}
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    withDefault(cfg.MaxSize, 10),
			MaxAge:     withDefault(cfg.MaxAge, 7),
			MaxBackups: withDefault(cfg.MaxBackups, 3),
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, writer, level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
