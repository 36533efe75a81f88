package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Crawler configuration
	Crawler CrawlerConfig `mapstructure:"crawler"`

	// Keyword search configuration
	Search SearchConfig `mapstructure:"search"`

	// Entity recognizer service configuration
	NER NERConfig `mapstructure:"ner"`

	// Storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Export configuration
	Export ExportConfig `mapstructure:"export"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// CrawlerConfig holds crawler-specific configuration
type CrawlerConfig struct {
	UserAgent       string        `mapstructure:"user_agent"`
	Timeout         time.Duration `mapstructure:"timeout"`
	PageDelay       time.Duration `mapstructure:"page_delay"`
	SitesPerRun     int           `mapstructure:"sites_per_run"`
	MaxPagesPerSite int           `mapstructure:"max_pages_per_site"`
	StrictPhones    bool          `mapstructure:"strict_phones"`
	PhoneRegion     string        `mapstructure:"phone_region"`
}

// SearchConfig holds keyword search provider configuration
type SearchConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Region     string        `mapstructure:"region"`
	RegionTLD  string        `mapstructure:"region_tld"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// NERConfig holds entity recognizer service configuration
type NERConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig holds export configuration
type ExportConfig struct {
	Placeholder string `mapstructure:"placeholder"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.contactsmith")
	}

	setDefaults(v)

	v.SetEnvPrefix("CONTACTSMITH")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Crawler defaults
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (compatible; ContactSmith/1.0)")
	v.SetDefault("crawler.timeout", "10s")
	v.SetDefault("crawler.page_delay", "1s")
	v.SetDefault("crawler.sites_per_run", 5)
	v.SetDefault("crawler.max_pages_per_site", 10)
	v.SetDefault("crawler.strict_phones", false)
	v.SetDefault("crawler.phone_region", "IN")

	// Search defaults
	v.SetDefault("search.endpoint", "https://html.duckduckgo.com/html")
	v.SetDefault("search.region", "India")
	v.SetDefault("search.region_tld", ".in")
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.timeout", "20s")

	// Entity recognizer defaults
	v.SetDefault("ner.endpoint", "http://localhost:8089/entities")
	v.SetDefault("ner.timeout", "15s")

	// Storage defaults
	v.SetDefault("storage.path", "./data")

	// Export defaults
	v.SetDefault("export.placeholder", "None")

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Crawler.Timeout <= 0 {
		return fmt.Errorf("crawler.timeout must be positive")
	}
	if c.Crawler.PageDelay < 0 {
		return fmt.Errorf("crawler.page_delay must not be negative")
	}
	if c.Crawler.SitesPerRun <= 0 {
		return fmt.Errorf("crawler.sites_per_run must be positive")
	}
	if c.Crawler.MaxPagesPerSite < 1 {
		return fmt.Errorf("crawler.max_pages_per_site must be at least 1")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}
	if c.NER.Endpoint == "" {
		return fmt.Errorf("ner.endpoint must be set")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set")
	}
	return nil
}
