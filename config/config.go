package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxUpstreamTimeout is the ceiling for a single TrustedParts call
const MaxUpstreamTimeout = 20 * time.Second

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	TrustedParts TrustedPartsConfig `mapstructure:"trustedparts"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Log          LogConfig          `mapstructure:"log"`
	Workspace    WorkspaceConfig    `mapstructure:"workspace"`
	Simulator    SimulatorConfig    `mapstructure:"simulator"`
	Git          GitConfig          `mapstructure:"git"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// TrustedPartsConfig holds TrustedParts search API configuration.
// CompanyID and APIKey may be left empty when every request carries its own.
type TrustedPartsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	CompanyID         string        `mapstructure:"company_id"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	CountryCode       string        `mapstructure:"country_code"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// WorkspaceConfig holds workspace storage configuration
type WorkspaceConfig struct {
	Root string `mapstructure:"root"`
}

// SimulatorConfig holds the thermal simulator invocation
type SimulatorConfig struct {
	Python  string        `mapstructure:"python"`
	Script  string        `mapstructure:"script"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GitConfig holds the git binary used for workspace version control
type GitConfig struct {
	Binary string `mapstructure:"binary"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/aha-designer/")
	}

	// AHA_TRUSTEDPARTS_API_KEY -> trustedparts.api_key
	v.SetEnvPrefix("AHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// setDefaults sets default configuration values. Every key needs a default
// so that AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"tauri://localhost", "http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("trustedparts.base_url", "https://api.trustedparts.com/v2/search")
	v.SetDefault("trustedparts.company_id", "")
	v.SetDefault("trustedparts.api_key", "")
	v.SetDefault("trustedparts.timeout", "20s")
	v.SetDefault("trustedparts.country_code", "US")
	v.SetDefault("trustedparts.user_agent", "AHA-Designer/0.1")
	v.SetDefault("trustedparts.requests_per_minute", 60)

	v.SetDefault("ratelimit.per_ip", 120)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("workspace.root", "./workspaces")

	v.SetDefault("simulator.python", "python3")
	v.SetDefault("simulator.script", "simulator/python-runner/main.py")
	v.SetDefault("simulator.timeout", "60s")

	v.SetDefault("git.binary", "git")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.TrustedParts.BaseURL == "" {
		return fmt.Errorf("TrustedParts base URL is required (set AHA_TRUSTEDPARTS_BASE_URL)")
	}

	if t := config.TrustedParts.Timeout; t <= 0 || t > MaxUpstreamTimeout {
		return fmt.Errorf("TrustedParts timeout must be in (0, %s], got: %s", MaxUpstreamTimeout, t)
	}

	if config.TrustedParts.RequestsPerMinute < 0 {
		return fmt.Errorf("TrustedParts requests_per_minute must not be negative")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative")
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got: %s", config.Log.Level)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	if config.Workspace.Root == "" {
		return fmt.Errorf("workspace root is required")
	}

	if config.Simulator.Timeout <= 0 {
		return fmt.Errorf("simulator timeout must be positive")
	}

	return nil
}
