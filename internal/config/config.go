package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	Admin   Admin   `envPrefix:"ADMIN_"`
	Storage Storage `envPrefix:"STORAGE_"`

	// ResetOnCorrupt replaces an unreadable catalog with the built-in seed at
	// startup instead of refusing to start.
	ResetOnCorrupt bool `env:"RESET_ON_CORRUPT" envDefault:"false"`
	// SearchCacheTTL bounds how long a search result may be served from cache.
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"5m"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	// MetricsToken guards /metrics. Empty means every scrape is refused.
	MetricsToken string `env:"METRICS_TOKEN"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

type Admin struct {
	// Password is the shared admin secret. Empty disables login.
	Password string `env:"PASSWORD" envDefault:"admin123"`
	// SessionTimeout is the admin token lifetime; 0 means tokens never expire.
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"0s"`
	TokenSecret    string        `env:"TOKEN_SECRET" envDefault:"dev-secret-change-me"`

	CanAdd    bool `env:"CAN_ADD" envDefault:"true"`
	CanEdit   bool `env:"CAN_EDIT" envDefault:"true"`
	CanDelete bool `env:"CAN_DELETE" envDefault:"true"`

	LoginLimitPerMin int `env:"LOGIN_LIMIT_PER_MIN" envDefault:"5"`
}

type Storage struct {
	// Driver is one of memory, sqlite or postgres.
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DSN" envDefault:"file:dashboard.db"`

	RestaurantsKey string `env:"RESTAURANTS_KEY" envDefault:"restaurantDashboardData"`
	AdminKey       string `env:"ADMIN_KEY" envDefault:"restaurantDashboardAdminMode"`
	SettingsKey    string `env:"SETTINGS_KEY" envDefault:"restaurantDashboardSettings"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Admin.SessionTimeout < 0 {
		return errors.New("ADMIN_SESSION_TIMEOUT must not be negative")
	}
	if c.Admin.LoginLimitPerMin <= 0 {
		return errors.New("ADMIN_LOGIN_LIMIT_PER_MIN must be positive")
	}
	if c.Storage.RestaurantsKey == "" || c.Storage.AdminKey == "" || c.Storage.SettingsKey == "" {
		return errors.New("storage keys must not be empty")
	}
	return nil
}
