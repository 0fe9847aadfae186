package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/parapente-jp/flightpass/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Store    sharedConfig.StoreConfig    `mapstructure:"store"`
	Stripe   sharedConfig.StripeConfig   `mapstructure:"stripe"`
	Admin    sharedConfig.AdminConfig    `mapstructure:"admin"`
	Closures sharedConfig.ClosuresConfig `mapstructure:"closures"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("FLIGHTPASS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Config file is optional: env vars plus defaults are enough for the
	// serverless deployment flavor.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "file":
		if c.Store.File.Path == "" {
			return fmt.Errorf("store.file.path is required for the file backend")
		}
	case "github":
		if c.Store.GitHub.Owner == "" || c.Store.GitHub.Repo == "" || c.Store.GitHub.Path == "" {
			return fmt.Errorf("store.github.owner, repo and path are required for the github backend")
		}
		if c.Store.GitHub.Token == "" {
			return fmt.Errorf("store.github.token is required for the github backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Store defaults: file backend with a local data directory
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.file.path", "./data/tickets.json")
	viper.SetDefault("store.github.branch", "main")

	// Stripe defaults (must be configured for checkout and issuance)
	viper.SetDefault("stripe.secret_key", "")
	viper.SetDefault("stripe.webhook_secret", "")
	viper.SetDefault("stripe.enabled", true)

	// Admin defaults (empty token disables admin routes)
	viper.SetDefault("admin.token", "")

	// Closure calendar defaults
	viper.SetDefault("closures.path", "./data/closures.json")
}
