package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	embedding "github.com/emberhq/hearth/internal/embedding/openai"
	"github.com/emberhq/hearth/internal/provider/openai"
)

// Config represents the gateway configuration.
type Config struct {
	Server    Server
	CORS      CORS
	Retry     Retry
	Cache     Cache
	OpenAI    openai.Config
	Embedding embedding.Config
}

// Server contains HTTP server settings.
type Server struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORS contains CORS policy settings.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// Retry controls the gateway retry policy for retryable completion
// failures. Delays are in milliseconds.
type Retry struct {
	MaxAttempts  int `env:"RETRY_MAX_ATTEMPTS"  envDefault:"3"`
	InitialDelay int `env:"RETRY_INITIAL_DELAY" envDefault:"1000"`
	MaxDelay     int `env:"RETRY_MAX_DELAY"     envDefault:"30000"`
}

// Cache contains semantic response cache settings.
type Cache struct {
	Enabled             bool    `env:"CACHE_ENABLED"              envDefault:"false"`
	RedisAddr           string  `env:"CACHE_REDIS_ADDR"           envDefault:"localhost:6379"`
	RedisPassword       string  `env:"CACHE_REDIS_PASSWORD"`
	IndexName           string  `env:"CACHE_INDEX_NAME"           envDefault:"hearth-cache"`
	SimilarityThreshold float64 `env:"CACHE_SIMILARITY_THRESHOLD" envDefault:"0.85"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*Server
	*CORS
	*Retry
	*Cache
	OpenAI    *openai.Config
	Embedding *embedding.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Retry,
		&cfg.Cache,
		&cfg.OpenAI,
		&cfg.Embedding,
	}
}
