package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("got port %q, want default 8080", cfg.Server.Port)
	}
	if cfg.Session.Expiration != "24h" {
		t.Errorf("got expiration %q, want default 24h", cfg.Session.Expiration)
	}
}

func TestLoadConfigRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml")); err == nil {
		t.Fatalf("config accepted without a session secret")
	}
}

func TestLoadConfigFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: \"9000\"\ndatabase:\n  dbname: fromfile\nsession:\n  secret: file-secret\n")
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("DB_NAME", "fromenv")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("file value not applied, port %q", cfg.Server.Port)
	}
	if cfg.Database.DBName != "fromenv" {
		t.Errorf("env override not applied, dbname %q", cfg.Database.DBName)
	}
	if cfg.Session.Secret != "file-secret" {
		t.Errorf("got secret %q", cfg.Session.Secret)
	}
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "trainhub"
	cfg.Database.SSLMode = ""

	got := cfg.GetPostgresConnectionString()
	want := "postgres://app:pw@db:5433/trainhub?sslmode=disable"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
