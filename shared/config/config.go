package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Niches     []string         `yaml:"niches"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Discovery  DiscoveryConfig  `yaml:"discovery"`
	AI         AIConfig         `yaml:"ai"`
	Email      EmailConfig      `yaml:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	DataDir    string           `yaml:"data_dir"`
	Schedule   string           `yaml:"schedule"`
}

// CatalogConfig configures access to the external video catalog API.
type CatalogConfig struct {
	APIBase string `yaml:"api_base" env:"CATALOG_API_BASE"`
	Token   string `yaml:"token" env:"CATALOG_TOKEN"`
}

// LedgerConfig configures the backend credit ledger endpoint.
type LedgerConfig struct {
	BaseURL string `yaml:"base_url" env:"LEDGER_BASE_URL"`
	Token   string `yaml:"token" env:"LEDGER_TOKEN"`
}

// DiscoveryConfig tunes the discovery crawl itself.
type DiscoveryConfig struct {
	DeepEmailScan  bool `yaml:"deep_email_scan"`
	UploadScanSize int  `yaml:"upload_scan_size"`
}

type AIConfig struct {
	GeminiAPIKey    string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model           string `yaml:"model"`
	OutreachPitches bool   `yaml:"outreach_pitches"`
	MaxPitches      int    `yaml:"max_pitches"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.Catalog.Token == "" {
		cfg.Catalog.Token = os.Getenv("CATALOG_TOKEN")
	}
	if cfg.Catalog.APIBase == "" {
		cfg.Catalog.APIBase = os.Getenv("CATALOG_API_BASE")
	}
	if cfg.Ledger.Token == "" {
		cfg.Ledger.Token = os.Getenv("LEDGER_TOKEN")
	}
	if cfg.Ledger.BaseURL == "" {
		cfg.Ledger.BaseURL = os.Getenv("LEDGER_BASE_URL")
	}
	if cfg.Ledger.BaseURL == "" {
		cfg.Ledger.BaseURL = "https://verality.io"
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.MaxPitches == 0 {
		cfg.AI.MaxPitches = 5
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if cfg.Discovery.UploadScanSize == 0 {
		cfg.Discovery.UploadScanSize = 5
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Monitoring.HealthPort == 0 {
		cfg.Monitoring.HealthPort = 8080
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 9 * * *" // Daily at 9 AM
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Niches) == 0 {
		return fmt.Errorf("at least one niche is required (set niches in config)")
	}
	if c.Catalog.Token == "" {
		return fmt.Errorf("catalog token is required (set CATALOG_TOKEN or catalog.token)")
	}
	if c.Email.Username == "" {
		return fmt.Errorf("email username is required (set EMAIL_USERNAME or email.username)")
	}
	if c.Email.Password == "" {
		return fmt.Errorf("email password is required (set EMAIL_PASSWORD or email.password)")
	}
	return nil
}
