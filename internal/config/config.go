package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// GatewayMode определяет, какой платёжный провайдер подключается к процессору
type GatewayMode string

const (
	// GatewayStub - встроенный stub, всегда успешный платёж
	GatewayStub GatewayMode = "stub"
	// GatewayRemote - внешний провайдер по gRPC
	GatewayRemote GatewayMode = "remote"
)

// Config содержит конфигурацию Payment Processor
type Config struct {
	AppEnv               Env           `env:"APP_ENV" envDefault:"local"`
	GRPCAddr             string        `env:"GRPC_ADDR"`
	HTTPAddr             string        `env:"HTTP_ADDR"`
	EnableGRPCReflection bool          `env:"ENABLE_GRPC_REFLECTION" envDefault:"false"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	GatewayMode    GatewayMode   `env:"GATEWAY_MODE" envDefault:"stub"`
	GatewayAddr    string        `env:"GATEWAY_ADDR"`
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"3s"`
	StubResult     string        `env:"STUB_RESULT"`

	OTelEnabled       bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint      string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSamplingRatio float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1.0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`
}

// Load загружает конфигурацию из переменных окружения.
// Адреса, не заданные явно, получают дефолты в зависимости от APP_ENV.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	if cfg.AppEnv == EnvLocal {
		setDefault(&cfg.GRPCAddr, "127.0.0.1:50052")
		setDefault(&cfg.HTTPAddr, "127.0.0.1:8082")
		setDefault(&cfg.GatewayAddr, "127.0.0.1:50060")
		setDefault(&cfg.OTelEndpoint, "127.0.0.1:4317")
	} else {
		setDefault(&cfg.GRPCAddr, "0.0.0.0:50052")
		setDefault(&cfg.HTTPAddr, "0.0.0.0:8082")
		setDefault(&cfg.GatewayAddr, "payment-gateway:50060")
		setDefault(&cfg.OTelEndpoint, "otel-collector:4317")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.GRPCAddr == "" {
		return fmt.Errorf("GRPC_ADDR is required")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.GatewayMode {
	case GatewayStub:
	case GatewayRemote:
		if c.GatewayAddr == "" {
			return fmt.Errorf("GATEWAY_ADDR is required for GATEWAY_MODE=remote")
		}
		if c.GatewayTimeout < 0 {
			return fmt.Errorf("GATEWAY_TIMEOUT must not be negative")
		}
	default:
		return fmt.Errorf("invalid GATEWAY_MODE: %s (must be 'stub' or 'remote')", c.GatewayMode)
	}
	if c.OTelSamplingRatio < 0 || c.OTelSamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0, 1]")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log(logger *zap.Logger) {
	logger.Info("Config loaded",
		zap.String("app_env", string(c.AppEnv)),
		zap.String("grpc_addr", c.GRPCAddr),
		zap.String("http_addr", c.HTTPAddr),
		zap.Bool("grpc_reflection", c.EnableGRPCReflection),
		zap.Duration("shutdown_timeout", c.ShutdownTimeout),
		zap.String("gateway_mode", string(c.GatewayMode)),
		zap.String("gateway_addr", c.GatewayAddr),
		zap.Duration("gateway_timeout", c.GatewayTimeout),
		zap.Bool("otel_enabled", c.OTelEnabled),
		zap.String("otel_endpoint", c.OTelEndpoint),
	)
}

// setDefault записывает value в *field, если поле не задано через env
func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
