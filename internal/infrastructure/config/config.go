package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API       APIConfig
	Session   SessionConfig
	Cache     CacheConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type APIConfig struct {
	URL     string        `env:"API_URL,     default=https://mentawai.universitas-digital.web.id/api"`
	Timeout time.Duration `env:"API_TIMEOUT, default=0s"`
	// GATrackingID is handed to the browser; the service never reports to it.
	GATrackingID string `env:"GA_TRACKING_ID"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET"`
	Backend      string        `env:"SESSION_BACKEND, default=redis"`
	TTL          time.Duration `env:"SESSION_TTL,     default=720h"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
}

type CacheConfig struct {
	TTL          time.Duration `env:"CACHE_TTL,     default=5m"`
	WarmSchedule string        `env:"WARM_SCHEDULE, default=@every 5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mentawai_shores"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type TelemetryConfig struct {
	// OTLPEndpoint enables trace export when set (host:port, no scheme).
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when one exists, then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: setLookuper{},
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setLookuper reads the process environment but treats a variable that is
// present and empty as unset, so "SESSION_BACKEND=" keeps the default.
type setLookuper struct{}

func (setLookuper) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if v == "" {
		return "", false
	}
	return v, ok
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.Secret == "" && c.IsProduction() {
		return errors.New("config: SESSION_SECRET is required in production")
	}
	return nil
}
