package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the API server configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	APIKey      string `env:"API_KEY"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"charledger"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`

	// Store
	StoreDriver  string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/charledger.db"`
	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBName       string `env:"DB_NAME" envDefault:"charledger"`
	DBMaxConns   int    `env:"DB_MAX_CONNS" envDefault:"20"`

	ShopCatalogPath string `env:"SHOP_CATALOG_PATH" envDefault:"configs/shop.json"`

	// Pending character prompts
	PendingTTL           time.Duration `env:"PENDING_TTL" envDefault:"15m"`
	PendingSweepInterval time.Duration `env:"PENDING_SWEEP_INTERVAL" envDefault:"5m"`
	WorkerCount          int           `env:"WORKER_COUNT" envDefault:"2"`

	OTelEndpoint   string   `env:"OTEL_ENDPOINT"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// DiscordConfig holds the Discord bot process configuration
type DiscordConfig struct {
	Token              string   `env:"DISCORD_TOKEN,required"`
	AppID              string   `env:"DISCORD_APP_ID,required"`
	APIURL             string   `env:"API_URL" envDefault:"http://localhost:8080"`
	APIKey             string   `env:"API_KEY"`
	ModRoleIDs         []string `env:"MOD_ROLE_IDS" envSeparator:","`
	OperatorUserID     string   `env:"OPERATOR_USER_ID"`
	ForceCommandUpdate bool     `env:"DISCORD_FORCE_COMMAND_UPDATE" envDefault:"false"`
	HealthPort         string   `env:"DISCORD_HEALTH_PORT" envDefault:"8082"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string   `env:"LOG_FORMAT" envDefault:"text"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDiscord loads the bot configuration from environment variables
func LoadDiscord() (*DiscordConfig, error) {
	_ = godotenv.Load()

	cfg := &DiscordConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks values that parse correctly but cannot be used
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > MaxPort {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
	case StoreDriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH must be set when STORE_DRIVER=%s", StoreDriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (expected %s or %s)", c.StoreDriver, StoreDriverPostgres, StoreDriverSQLite)
	}

	if c.PendingTTL <= 0 {
		return fmt.Errorf("PENDING_TTL must be positive, got %s", c.PendingTTL)
	}
	if c.PendingSweepInterval <= 0 {
		return fmt.Errorf("PENDING_SWEEP_INTERVAL must be positive, got %s", c.PendingSweepInterval)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
