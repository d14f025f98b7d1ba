package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	SiteName string `mapstructure:"site_name"`

	// Storage
	DBDriver string `mapstructure:"db_driver"` // "sqlite" or "postgres"
	DBDSN    string `mapstructure:"db_dsn"`

	// Sessions
	SessionSecretKey  string        `mapstructure:"session_secret_key"`
	SessionLifetime   time.Duration `mapstructure:"session_lifetime"`
	SessionCookieName string        `mapstructure:"session_cookie_name"`
	JWTAlgorithm      string        `mapstructure:"jwt_algorithm"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	FeedPageSize int `mapstructure:"feed_page_size"`

	ConfigPath string `mapstructure:"-"`
}

const (
	EnvPrefix = "SNS"

	DefaultConfigPath        = "/etc/sns/config.yml"
	DefaultSiteName          = "Simple SNS"
	DefaultDBDriver          = "sqlite"
	DefaultDBDSN             = "/var/lib/sns/sns.sqlite3"
	DefaultSessionLifetime   = time.Hour
	DefaultSessionCookieName = "sns_session"
	DefaultJWTAlgorithm      = "HS256"
	DefaultAPIHost           = "0.0.0.0"
	DefaultAPIPort           = 8080
	DefaultLogLevel          = "info"
	DefaultFeedPageSize      = 20
	MaxFeedPageSize          = 100

	MinSessionSecretLength = 32
)

var keys = []string{
	"site_name",
	"db_driver",
	"db_dsn",
	"session_secret_key",
	"session_lifetime",
	"session_cookie_name",
	"jwt_algorithm",
	"api_host",
	"api_port",
	"ssl_cert",
	"ssl_key",
	"cors_origins",
	"log_file",
	"log_level",
	"feed_page_size",
}

// Load reads the YAML file at configPath and applies SNS_* environment
// overrides. The default path may be absent; an explicit one may not.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("site_name", DefaultSiteName)
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_dsn", DefaultDBDSN)
	v.SetDefault("session_lifetime", DefaultSessionLifetime)
	v.SetDefault("session_cookie_name", DefaultSessionCookieName)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("feed_page_size", DefaultFeedPageSize)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if _, err := os.Stat(configPath); err == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("db_driver must be 'sqlite' or 'postgres'")
	}

	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required")
	}

	if c.SessionSecretKey == "" {
		return fmt.Errorf("session_secret_key is required")
	}
	if len(c.SessionSecretKey) < MinSessionSecretLength {
		return fmt.Errorf("session_secret_key must be at least %d bytes", MinSessionSecretLength)
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("session_lifetime must be positive")
	}

	if c.SessionCookieName == "" {
		return fmt.Errorf("session_cookie_name is required")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	if c.FeedPageSize <= 0 || c.FeedPageSize > MaxFeedPageSize {
		return fmt.Errorf("feed_page_size must be between 1 and %d", MaxFeedPageSize)
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return errors.New("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) TLSEnabled() bool {
	return c.SSLCert != "" && c.SSLKey != ""
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("SNS_DEV_MODE") == "1"
}
