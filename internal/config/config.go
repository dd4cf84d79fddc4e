package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Inventory Service
// Заполняется из переменных окружения пакетом caarlos0/env
type Config struct {
	AppEnv            Env           `env:"APP_ENV" envDefault:"local"`
	HTTPAddr          string        `env:"HTTP_ADDR"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel          string        `env:"LOG_LEVEL"`
	LogFormat         string        `env:"LOG_FORMAT"`
	OtelEnabled       bool          `env:"OTEL_ENABLED" envDefault:"false"`
	OtelOTLPEndpoint  string        `env:"OTEL_OTLP_ENDPOINT"`
	OtelSamplingRatio float64       `env:"OTEL_SAMPLING_RATIO" envDefault:"1.0"`
}

// Load загружает конфигурацию из переменных окружения
// Дефолты, зависящие от окружения (адреса), выставляются после парсинга:
// локально слушаем только loopback, в docker — все интерфейсы
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppEnv != EnvLocal && cfg.AppEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", cfg.AppEnv)
	}

	// Порт 3001 исторический: на нём фронтенд ждёт API
	if cfg.HTTPAddr == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.HTTPAddr = "127.0.0.1:3001"
		} else {
			cfg.HTTPAddr = "0.0.0.0:3001"
		}
	}

	if cfg.OtelOTLPEndpoint == "" {
		if cfg.AppEnv == EnvLocal {
			cfg.OtelOTLPEndpoint = "127.0.0.1:4317"
		} else {
			cfg.OtelOTLPEndpoint = "otel-collector:4317"
		}
	}

	if cfg.OtelSamplingRatio < 0 || cfg.OtelSamplingRatio > 1 {
		return Config{}, fmt.Errorf("invalid OTEL_SAMPLING_RATIO: %f (must be in [0..1])", cfg.OtelSamplingRatio)
	}

	return cfg, nil
}
