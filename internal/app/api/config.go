package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Apurer/cell-tech-api/internal/platform/database"
	platformobservability "github.com/Apurer/cell-tech-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/cell-tech-api/internal/platform/temporal"
)

const localJWTSecret = "cell-tech-local-secret"

// Config carries environment-driven settings shared by the API, the worker and the CLI.
type Config struct {
	Port        string `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseDriver string `envconfig:"DATABASE_DRIVER"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"celltech.db"`
	AutoMigrate    bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	JWTSecret          string   `envconfig:"JWT_SECRET"`
	JWTAccessExpiresIn Lifetime `envconfig:"JWT_ACCESS_EXPIRES_IN" default:"24h"`
	BcryptSaltRounds   int      `envconfig:"BCRYPT_SALT_ROUNDS" default:"10"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"30s"`

	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS"`
	KafkaSalesTopic string   `envconfig:"KAFKA_SALES_TOPIC" default:"celltech.sales"`

	TemporalAddress   string `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	TemporalDisabled  bool   `envconfig:"TEMPORAL_DISABLED"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Lifetime is a token lifetime. Besides Go durations it accepts whole days, e.g. "7d".
type Lifetime time.Duration

// Decode implements envconfig.Decoder.
func (l *Lifetime) Decode(value string) error {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return fmt.Errorf("invalid day count %q", value)
		}
		*l = Lifetime(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*l = Lifetime(d)
	return nil
}

func (l Lifetime) Duration() time.Duration { return time.Duration(l) }

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" && cfg.IsLocal() {
		cfg.JWTSecret = localJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid TCP port, got %q", c.Port))
	}
	if _, err := c.Database().ResolveDriver(); err != nil {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: %w", err))
	}
	if strings.EqualFold(c.DatabaseDriver, database.DriverPostgres) && strings.TrimSpace(c.PostgresDSN) == "" {
		errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres driver"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside the local environment"))
	}
	if c.JWTAccessExpiresIn.Duration() <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_EXPIRES_IN must be positive"))
	}
	if c.BcryptSaltRounds < 4 || c.BcryptSaltRounds > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_SALT_ROUNDS must be between 4 and 31, got %d", c.BcryptSaltRounds))
	}
	if c.StatsCacheTTL <= 0 {
		errs = append(errs, errors.New("STATS_CACHE_TTL must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && strings.TrimSpace(c.KafkaSalesTopic) == "" {
		errs = append(errs, errors.New("KAFKA_SALES_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(errs...)
}

func (c Config) IsLocal() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "local")
}

func (c Config) Addr() string { return ":" + c.Port }

func (c Config) Database() database.Settings {
	return database.Settings{Driver: c.DatabaseDriver, PostgresDSN: c.PostgresDSN, SQLitePath: c.SQLitePath}
}

func (c Config) Temporal() platformtemporal.Settings {
	return platformtemporal.Settings{Address: c.TemporalAddress, Namespace: c.TemporalNamespace, Disabled: c.TemporalDisabled}
}

func (c Config) Observability(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}
