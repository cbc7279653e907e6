// Package config loads runtime settings from the environment, an optional
// .env file and an optional YAML file named by DAFTAR_CONFIG.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const configFileEnv = "DAFTAR_CONFIG"

type Config struct {
	DBDriver   string `mapstructure:"db_driver"`
	DBPath     string `mapstructure:"db_path"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`

	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`

	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`

	AuthSecret         string        `mapstructure:"auth_secret"`
	AuthPassphraseHash string        `mapstructure:"auth_passphrase_hash"`
	AuthTokenTTL       time.Duration `mapstructure:"auth_token_ttl"`

	Timezone string `mapstructure:"timezone"`

	RewardStreakBonus int `mapstructure:"reward_streak_bonus"`
	RewardUnderLimit  int `mapstructure:"reward_under_limit"`
	RewardOverLimit   int `mapstructure:"reward_over_limit"`

	WorkerInterval time.Duration `mapstructure:"worker_interval"`
}

var defaults = map[string]any{
	"db_driver":   "sqlite",
	"db_path":     "daftar.db",
	"db_host":     "localhost",
	"db_port":     "5432",
	"db_user":     "",
	"db_password": "",
	"db_name":     "daftar",

	"port":         "8080",
	"cors_origins": []string{},

	"redis_host":     "",
	"redis_port":     "6379",
	"redis_password": "",
	"redis_db":       0,
	"cache_ttl":      "30m",

	"rate_limit":        100,
	"rate_limit_window": "1m",

	"auth_secret":          "",
	"auth_passphrase_hash": "",
	"auth_token_ttl":       "720h",

	"timezone": "Asia/Tehran",

	"reward_streak_bonus": 5,
	"reward_under_limit":  10,
	"reward_over_limit":   5,

	"worker_interval": "1h",
}

// Load resolves the configuration. Environment variables win over the YAML
// file, which wins over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv(configFileEnv))
}

func load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "pgx", "postgres", "memory":
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	if c.AuthPassphraseHash != "" && c.AuthSecret == "" {
		return errors.New("config: AUTH_SECRET is required when AUTH_PASSPHRASE_HASH is set")
	}

	if c.RewardStreakBonus < 0 || c.RewardUnderLimit < 0 || c.RewardOverLimit < 0 {
		return errors.New("config: reward points cannot be negative")
	}

	if c.WorkerInterval <= 0 {
		return fmt.Errorf("config: WORKER_INTERVAL must be positive, got %s", c.WorkerInterval)
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) AuthEnabled() bool {
	return c.AuthPassphraseHash != ""
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) UsesPostgres() bool {
	return c.DBDriver == "pgx" || c.DBDriver == "postgres"
}
