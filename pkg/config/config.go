// Package config loads all runtime configuration from the environment
// under the TRENDIBAY_ prefix. A .env file is honored in dev.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "TRENDIBAY"

type Config struct {
	App      App
	DB       DB
	Redis    Redis
	JWT      JWT
	Password Password
	Auth     Auth
	Checkout Checkout
	Cron     Cron
	Features Features
}

type App struct {
	Name            string        `envconfig:"APP_NAME" default:"trendibay-backend"`
	Env             string        `envconfig:"APP_ENV" default:"dev"`
	Host            string        `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"20s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

type DB struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"trendibay"`
	Password        string        `envconfig:"DB_PASSWORD" default:""`
	Name            string        `envconfig:"DB_NAME" default:"trendibay"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

func (d DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type JWT struct {
	Secret          string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer          string        `envconfig:"JWT_ISSUER" default:"trendibay"`
	AccessTTL       time.Duration `envconfig:"JWT_ACCESS_TTL" default:"15m"`
	RefreshTTL      time.Duration `envconfig:"JWT_REFRESH_TTL" default:"720h"`
	ClockSkewLeeway time.Duration `envconfig:"JWT_CLOCK_SKEW_LEEWAY" default:"30s"`
}

type Password struct {
	ArgonMemoryKiB    uint32 `envconfig:"PASSWORD_ARGON_MEMORY_KIB" default:"65536"`
	ArgonIterations   uint32 `envconfig:"PASSWORD_ARGON_ITERATIONS" default:"3"`
	ArgonParallelism  uint8  `envconfig:"PASSWORD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLength   uint32 `envconfig:"PASSWORD_ARGON_SALT_LENGTH" default:"16"`
	ArgonKeyLength    uint32 `envconfig:"PASSWORD_ARGON_KEY_LENGTH" default:"32"`
	MinLength         int    `envconfig:"PASSWORD_MIN_LENGTH" default:"8"`
	RequireComplexity bool   `envconfig:"PASSWORD_REQUIRE_COMPLEXITY" default:"false"`
}

type Auth struct {
	LoginRateLimit       int           `envconfig:"AUTH_LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow      time.Duration `envconfig:"AUTH_LOGIN_RATE_WINDOW" default:"1m"`
	RegisterRateLimit    int           `envconfig:"AUTH_REGISTER_RATE_LIMIT" default:"5"`
	RegisterRateWindow   time.Duration `envconfig:"AUTH_REGISTER_RATE_WINDOW" default:"1m"`
	BootstrapAdminEmail  string        `envconfig:"AUTH_BOOTSTRAP_ADMIN_EMAIL" default:""`
	BootstrapAdminSecret string        `envconfig:"AUTH_BOOTSTRAP_ADMIN_SECRET" default:""`
}

type Checkout struct {
	ShippingFlatFeeCents int64         `envconfig:"CHECKOUT_SHIPPING_FLAT_FEE_CENTS" default:"6000"`
	IdempotencyWindow    time.Duration `envconfig:"CHECKOUT_IDEMPOTENCY_WINDOW" default:"15m"`
	PersistMaxRetries    uint64        `envconfig:"CHECKOUT_PERSIST_MAX_RETRIES" default:"3"`
	PersistBackoffBase   time.Duration `envconfig:"CHECKOUT_PERSIST_BACKOFF_BASE" default:"100ms"`
	StepTimeout          time.Duration `envconfig:"CHECKOUT_STEP_TIMEOUT" default:"5s"`
	CartCacheTTL         time.Duration `envconfig:"CHECKOUT_CART_CACHE_TTL" default:"5m"`
}

type Cron struct {
	CartClearSweepInterval time.Duration `envconfig:"CRON_CART_CLEAR_SWEEP_INTERVAL" default:"1m"`
	CartClearMinAge        time.Duration `envconfig:"CRON_CART_CLEAR_MIN_AGE" default:"30s"`
	LockTTL                time.Duration `envconfig:"CRON_LOCK_TTL" default:"55s"`
}

type Features struct {
	AutoMigrate bool `envconfig:"FEATURE_AUTO_MIGRATE" default:"false"`
}

// Load reads the environment (and .env when present) into Config.
func Load() (*Config, error) {
	// Missing .env is fine outside dev.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
