// Package logger настраивает zap логгер с ротацией файла журнала.
// Терминал занят интерфейсом, поэтому журнал пишется только в файл.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config определяет настройки журнала
type Config struct {
	Level      string
	OutputPath string
	MaxSize    int // Мегабайты
	MaxBackups int
	MaxAge     int // Дни
}

// ParseLevel преобразует строковый уровень в уровень zap
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New создает логгер, пишущий JSON в файл с ротацией.
// Пустой OutputPath дает логгер, который ничего не пишет.
func New(config Config) (*zap.Logger, error) {
	if config.OutputPath == "" {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории журнала: %w", err)
	}

	if config.MaxSize <= 0 {
		config.MaxSize = 10
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 3
	}
	if config.MaxAge <= 0 {
		config.MaxAge = 28
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   config.OutputPath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
	})

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		fileWriter,
		ParseLevel(config.Level),
	)

	return zap.New(core, zap.AddCaller()), nil
}
