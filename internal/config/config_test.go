package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Name: "dinemapper"},
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Server.Port != defaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, defaultPort)
	}
	if cfg.Server.WebhookPath != defaultWebhookPath {
		t.Errorf("webhook path = %q, want %q", cfg.Server.WebhookPath, defaultWebhookPath)
	}
	if cfg.Database.Port != "5432" || cfg.Database.SSLMode != "disable" {
		t.Errorf("db defaults = (%q, %q)", cfg.Database.Port, cfg.Database.SSLMode)
	}
	if cfg.Database.MaxConnections != 10 {
		t.Errorf("max connections = %d, want 10", cfg.Database.MaxConnections)
	}
}

func TestNormalizeAllowsEmptyCredentials(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("empty LINE/Google credentials must be accepted: %v", err)
	}
}

func TestNormalizeRequiresDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	if err := Normalize(cfg); err == nil {
		t.Error("missing database.host must fail")
	}

	cfg = validConfig()
	cfg.Database.Name = " "
	if err := Normalize(cfg); err == nil {
		t.Error("missing database.name must fail")
	}
}

func TestNormalizeRejectsRelativeWebhookPath(t *testing.T) {
	cfg := validConfig()
	cfg.Server.WebhookPath = "callback"
	if err := Normalize(cfg); err == nil {
		t.Error("webhook path without leading slash must fail")
	}
}

func TestLoadReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
line:
  channel_secret: file-secret
server:
  port: 8080
database:
  host: db.internal
  name: dinemapper
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHANNEL_SECRET", "env-secret")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Line.ChannelSecret != "env-secret" {
		t.Errorf("channel secret = %q, env must win over file", cfg.Line.ChannelSecret)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q, want file value", cfg.Database.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file must fail")
	}
}
