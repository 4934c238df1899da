// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration parsed from environment variables. One
// struct serves both binaries; the service ignores client-only fields and
// vice versa.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Client (profilectl / engine) settings.
	ProfileServiceURL string        `env:"PROFILE_SERVICE_URL" envDefault:"http://localhost:8080"`
	ProfileToken      string        `env:"PROFILE_TOKEN"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"15s"`

	// Service storage. An empty DB_URL selects the in-memory repository;
	// an empty REDIS_URL selects the in-memory session store.
	DBURL    string `env:"DB_URL"`
	RedisURL string `env:"REDIS_URL"`

	// KafkaBrokers, when set, enables profile.updated event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"profile.updated"`

	// Auth. JWTSecret signs dev bearer tokens; ServiceTokenHash is an
	// argon2id hash of the shared API token accepted alongside JWTs.
	JWTSecret        string        `env:"JWT_SECRET"`
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"12h"`
	ServiceTokenHash string        `env:"SERVICE_TOKEN_HASH"`

	// SeedFile is an optional YAML fixture loaded into the repository at
	// service startup.
	SeedFile string `env:"SEED_FILE"`
	// ResumeDir is the directory served for resume downloads.
	ResumeDir string `env:"RESUME_DIR" envDefault:"./resumes"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"profile-engine"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// EventsEnabled reports whether profile.updated publishing is configured.
func (c Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }
