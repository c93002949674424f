package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит конфигурацию для создания logger
type Config struct {
	// ServiceName имя сервиса, добавляется ко всем записям
	ServiceName string
	// Env окружение (local/docker)
	Env string
	// Level уровень логирования (debug/info/warn/error), default "info"
	Level string
	// Format формат вывода ("json"|"console"), default: local=console, docker=json
	Format string
	// Output куда писать логи, default os.Stderr
	Output io.Writer
}

// New создаёт zap.Logger с полями service и env.
// Локально добавляет caller, в docker пишет компактный json.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		if cfg.Env == "docker" {
			cfg.Format = "json"
		} else {
			cfg.Format = "console"
		}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be json/console)", cfg.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Output), level)

	var opts []zap.Option
	if cfg.Env != "docker" {
		opts = append(opts, zap.AddCaller())
	}

	return zap.New(core, opts...).With(
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
	), nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", s)
	}
}

// Sync вызывает log.Sync(), игнорируя harmless ошибки
// (например, "sync /dev/stderr: invalid argument" на некоторых системах)
func Sync(log *zap.Logger) {
	_ = log.Sync()
}
