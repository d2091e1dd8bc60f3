package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	GRPCPort int `mapstructure:"grpc_port"`
	HTTPPort int `mapstructure:"http_port"`

	DBDriver string `mapstructure:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn"`

	// RedisURL selects the redis session store; empty keeps state in memory.
	RedisURL string `mapstructure:"redis_url"`

	CartStorageKey  string        `mapstructure:"cart_storage_key"`
	CartTTL         time.Duration `mapstructure:"cart_ttl"`
	DefaultCurrency string        `mapstructure:"default_currency"`
	VATBasisPoints  int64         `mapstructure:"vat_bps"`

	UploadDir      string `mapstructure:"upload_dir"`
	UploadMaxBytes int64  `mapstructure:"upload_max_bytes"`

	CatalogFile string `mapstructure:"catalog_file"`

	Locales       []string `mapstructure:"locales"`
	DefaultLocale string   `mapstructure:"default_locale"`

	QuoteConcurrency int `mapstructure:"quote_concurrency"`
}

var defaults = map[string]any{
	"app_env":           "dev",
	"log_level":         "info",
	"http_port":         8080,
	"grpc_port":         8081,
	"db_driver":         "sqlite",
	"db_dsn":            "file:printshop.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	"redis_url":         "",
	"cart_storage_key":  "print-cart",
	"cart_ttl":          30 * 24 * time.Hour,
	"default_currency":  "EUR",
	"vat_bps":           2300,
	"upload_dir":        "./data/uploads",
	"upload_max_bytes":  100 << 20,
	"catalog_file":      "",
	"locales":           []string{"en", "pl", "de"},
	"default_locale":    "en",
	"quote_concurrency": 10,
}

// Load reads defaults, an optional config.yaml and environment overrides,
// in increasing order of precedence.
func Load() (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/printshop/")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("config: unsupported db_driver %q", c.DBDriver)
	}
	if len(c.Locales) == 0 {
		return errors.New("config: at least one locale is required")
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("config: upload_max_bytes must be positive, got %d", c.UploadMaxBytes)
	}
	if c.VATBasisPoints < 0 {
		return fmt.Errorf("config: vat_bps cannot be negative, got %d", c.VATBasisPoints)
	}
	return nil
}
