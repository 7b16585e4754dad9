package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("default JWT expire = %d, want 24", cfg.JWT.ExpireHour)
	}
	if cfg.JWT.RefreshExpireHour != 24*7 {
		t.Errorf("default refresh expire = %d, want 168", cfg.JWT.RefreshExpireHour)
	}
	if cfg.Log.RetentionDays != 30 {
		t.Errorf("default log retention = %d, want 30", cfg.Log.RetentionDays)
	}
	if cfg.Upload.Dir != "uploads" {
		t.Errorf("default upload dir = %q, want uploads", cfg.Upload.Dir)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want default 8080", cfg.Server.Port)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"9000\"\ndatabase:\n  driver: postgres\n  dsn: \"host=db user=app dbname=taskhive\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
	// Unset sections fall back to defaults.
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("JWT expire = %d, want default 24", cfg.JWT.ExpireHour)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want default info", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("LOG_RETENTION_DAYS", "90")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want env override 7070", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, want env override", cfg.JWT.Secret)
	}
	if cfg.Log.RetentionDays != 90 {
		t.Errorf("retention = %d, want env override 90", cfg.Log.RetentionDays)
	}
}
