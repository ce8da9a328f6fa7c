package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// LineConfig holds LINE Messaging API credentials.
// Empty credentials are allowed: the webhook stays up but rejects every
// request at signature verification, which is the desired local-dev behaviour.
type LineConfig struct {
	ChannelSecret string `yaml:"channel_secret" envconfig:"CHANNEL_SECRET"`
	ChannelToken  string `yaml:"channel_token" envconfig:"CHANNEL_ACCESS_TOKEN"`
}

// GoogleConfig holds the Google Maps Platform API key used for geocoding,
// nearby search, place details, and photo resolution.
type GoogleConfig struct {
	MapsAPIKey string `yaml:"maps_api_key" envconfig:"GOOGLE_MAPS_API_KEY"`
}

// ServerConfig specifies HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port" envconfig:"PORT"`
	// Tunnel exposes the local listener through an ngrok tunnel so the
	// webhook URL can be registered in the LINE developer console.
	Tunnel      bool   `yaml:"tunnel" envconfig:"IS_LOCAL"`
	NgrokToken  string `yaml:"ngrok_token" envconfig:"NGROK_AUTHTOKEN"`
	WebhookPath string `yaml:"webhook_path"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Stacks      string `yaml:"stacks"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	ErrorsFile  string `yaml:"errors_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// DatabaseConfig holds Postgres connection settings for the favorites store.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Config aggregates the full application configuration.
type Config struct {
	Line     LineConfig     `yaml:"line"`
	Google   GoogleConfig   `yaml:"google"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

const (
	defaultPort        = 3000
	defaultWebhookPath = "/callback"
)

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates configuration fields and fills in defaults.
// LINE and Google credentials are intentionally not required: the transport
// runs with empty credentials, only the database block is mandatory.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Server.WebhookPath) == "" {
		cfg.Server.WebhookPath = defaultWebhookPath
	}
	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		return fmt.Errorf("server.webhook_path must start with '/', got %q", cfg.Server.WebhookPath)
	}

	if strings.TrimSpace(cfg.Database.Host) == "" {
		return fmt.Errorf("database.host is required")
	}
	if strings.TrimSpace(cfg.Database.Port) == "" {
		cfg.Database.Port = "5432"
	}
	if strings.TrimSpace(cfg.Database.Name) == "" {
		return fmt.Errorf("database.name is required")
	}
	if strings.TrimSpace(cfg.Database.SSLMode) == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 10
	}

	return nil
}
