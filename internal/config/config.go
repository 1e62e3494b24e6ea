package config

import (
	"os"
	"strconv"
	"time"

	"seqentropy/internal"
	"seqentropy/internal/complexity"
	"seqentropy/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig
	Estimator EstimatorConfig
	Surrogate SurrogateConfig
	Batch     BatchConfig
	Server    ServerConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// EstimatorConfig holds complexity estimator settings
type EstimatorConfig struct {
	Base          float64
	Strict        bool
	Index         complexity.IndexMode
	AutoThreshold int
}

// SurrogateConfig holds shuffle-surrogate test settings
type SurrogateConfig struct {
	Count int
	Seed  int64
}

// BatchConfig holds batch runner settings
type BatchConfig struct {
	Workers int
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           string
	MaxLength      int
	MaxBatch       int
	MaxSurrogates  int
	RequestTimeout time.Duration
}

// Options converts the estimator settings into complexity options
func (c EstimatorConfig) Options() []complexity.Option {
	return []complexity.Option{
		complexity.WithBase(c.Base),
		complexity.WithStrict(c.Strict),
		complexity.WithIndex(c.Index),
		complexity.WithAutoThreshold(c.AutoThreshold),
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Log:    LogConfig{Level: internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))},
		Batch:  BatchConfig{Workers: getEnvIntOrDefault("SEQCX_WORKERS", 0)},
		Server: *loadServerConfig(),
		Surrogate: SurrogateConfig{
			Count: getEnvIntOrDefault("SEQCX_SURROGATES", 99),
			Seed:  int64(getEnvIntOrDefault("SEQCX_SEED", 42)),
		},
	}

	estimatorConfig, err := loadEstimatorConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load estimator configuration")
	}
	config.Estimator = *estimatorConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadEstimatorConfig() (*EstimatorConfig, error) {
	mode, err := complexity.ParseIndexMode(os.Getenv("SEQCX_INDEX"))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return &EstimatorConfig{
		Base:          getEnvFloatOrDefault("SEQCX_LOG_BASE", complexity.DefaultBase),
		Strict:        getEnvBoolOrDefault("SEQCX_STRICT", false),
		Index:         mode,
		AutoThreshold: getEnvIntOrDefault("SEQCX_AUTO_THRESHOLD", complexity.DefaultAutoThreshold),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		MaxLength:      getEnvIntOrDefault("SEQCX_MAX_LENGTH", 1_000_000),
		MaxBatch:       getEnvIntOrDefault("SEQCX_MAX_BATCH", 1000),
		MaxSurrogates:  getEnvIntOrDefault("SEQCX_MAX_SURROGATES", 9999),
		RequestTimeout: getEnvDurationOrDefault("SEQCX_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func validateConfig(config *Config) error {
	if b := config.Estimator.Base; !(b > 0) || b == 1 {
		return errors.ConfigInvalid("SEQCX_LOG_BASE must be positive and not 1")
	}
	if config.Estimator.AutoThreshold < 0 {
		return errors.ConfigInvalid("SEQCX_AUTO_THRESHOLD must be non-negative")
	}
	if config.Surrogate.Count < 0 {
		return errors.ConfigInvalid("SEQCX_SURROGATES must be non-negative")
	}
	if config.Batch.Workers < 0 {
		return errors.ConfigInvalid("SEQCX_WORKERS must be non-negative")
	}
	if config.Server.MaxLength <= 0 || config.Server.MaxBatch <= 0 {
		return errors.ConfigInvalid("SEQCX_MAX_LENGTH and SEQCX_MAX_BATCH must be positive")
	}
	if config.Server.MaxSurrogates <= 0 {
		return errors.ConfigInvalid("SEQCX_MAX_SURROGATES must be positive")
	}
	if config.Surrogate.Count > config.Server.MaxSurrogates {
		return errors.ConfigInvalid("SEQCX_SURROGATES exceeds SEQCX_MAX_SURROGATES")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
