package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "CARSDB"

type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
}

type AppConfig struct {
	Env  string `envconfig:"CARSDB_ENV" default:"dev"`
	Port string `envconfig:"CARSDB_PORT" default:"8080"`
}

func (a AppConfig) Addr() string {
	if strings.HasPrefix(a.Port, ":") {
		return a.Port
	}
	return ":" + a.Port
}

type MongoConfig struct {
	URI      string `envconfig:"CARSDB_MONGODB_URI" required:"true"`
	Database string `envconfig:"CARSDB_MONGODB_DB" default:"carsdb"`
	// Direct forces a direct connection, needed against a single-node
	// replica set whose advertised host is not reachable from here.
	Direct bool `envconfig:"CARSDB_MONGODB_DIRECT" default:"false"`
}

type JWTConfig struct {
	Secret string        `envconfig:"CARSDB_JWT_SECRET" required:"true"`
	Issuer string        `envconfig:"CARSDB_JWT_ISSUER" default:"carsdb"`
	TTL    time.Duration `envconfig:"CARSDB_JWT_TTL" default:"1h"`
}

type HTTPConfig struct {
	CORSOrigins    []string      `envconfig:"CARSDB_CORS_ORIGINS" default:"http://localhost:5173"`
	AuthRateLimit  float64       `envconfig:"CARSDB_AUTH_RATE_LIMIT" default:"1"`
	AuthRateBurst  int           `envconfig:"CARSDB_AUTH_RATE_BURST" default:"5"`
	RequestTimeout time.Duration `envconfig:"CARSDB_REQUEST_TIMEOUT" default:"15s"`
}

type LoggingConfig struct {
	Level  string `envconfig:"CARSDB_LOG_LEVEL" default:"info"`
	Format string `envconfig:"CARSDB_LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) < 16 {
		return fmt.Errorf("CARSDB_JWT_SECRET must be at least 16 characters")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("CARSDB_JWT_TTL must be positive")
	}
	if c.HTTP.AuthRateLimit <= 0 || c.HTTP.AuthRateBurst <= 0 {
		return fmt.Errorf("auth rate limit and burst must be positive")
	}
	return nil
}
