package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourceConfig describes the recipe listing page ingested at startup
type SourceConfig struct {
	URL       string        `mapstructure:"url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Keywords  []string      `mapstructure:"keywords"`
}

// CacheConfig holds listing page cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // 0 disables the cache
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"`
	Source int `mapstructure:"source"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	return LoadWithViper(viper.New(), "")
}

// LoadWithViper loads configuration into v, which may already carry bound flags.
// configFile, when set, replaces the config file search.
func LoadWithViper(v *viper.Viper, configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/recipebook/")
	}

	// Environment variable settings: server.port -> RECIPEBOOK_SERVER_PORT
	v.SetEnvPrefix("RECIPEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load(".env")
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Source defaults
	v.SetDefault("source.url", "https://tasty.co")
	v.SetDefault("source.user_agent", "RecipeBook/1.0")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.keywords", []string{"bake", "baking", "bakes"})

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.source", 6)

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Server.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("environment must be 'development', 'production' or 'test', got: %s", config.Server.Environment)
	}

	u, err := url.Parse(config.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source URL must be an absolute http(s) URL, got: %q", config.Source.URL)
	}

	if config.Source.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got: %s", config.Source.Timeout)
	}

	hasKeyword := false
	for _, k := range config.Source.Keywords {
		if strings.TrimSpace(k) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return fmt.Errorf("at least one source keyword is required (set RECIPEBOOK_SOURCE_KEYWORDS)")
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}
	if config.RateLimit.Source <= 0 {
		return fmt.Errorf("source rate limit must be positive, got: %d", config.RateLimit.Source)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.Logging.Level)); err != nil {
		return fmt.Errorf("invalid log level: %q", config.Logging.Level)
	}

	return nil
}
