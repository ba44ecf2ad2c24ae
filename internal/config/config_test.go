package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvDownloadDir, "")
	t.Setenv(EnvPort, "")
	t.Setenv("HOME", t.TempDir()) // keep discovery away from a real ~/.hookcut

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiModel != DefaultModel {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.DownloadDir != DefaultDownloadDir {
		t.Fatalf("download dir = %q", cfg.DownloadDir)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("port = %d", cfg.Port)
	}
	if cfg.ClipsDir() != filepath.Join(DefaultDownloadDir, "clips") {
		t.Fatalf("clips dir = %q", cfg.ClipsDir())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "k-123")
	t.Setenv(EnvModel, "models/gemini-2.5-pro")
	t.Setenv(EnvDownloadDir, "/data/dl")
	t.Setenv(EnvPort, "9999")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "k-123" {
		t.Fatalf("api key = %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "models/gemini-2.5-pro" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.DownloadDir != "/data/dl" || cfg.Port != 9999 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	t.Setenv(EnvAPIKey, "k-123")
	t.Setenv(EnvModel, "models/from-env")
	t.Setenv(EnvDownloadDir, "")
	t.Setenv(EnvPort, "")

	path := filepath.Join(t.TempDir(), "hookcut.yaml")
	data := "gemini_model: models/from-file\ndownload_dir: /data/from-file\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiModel != "models/from-env" {
		t.Fatalf("env must override file, got %q", cfg.GeminiModel)
	}
	if cfg.DownloadDir != "/data/from-file" {
		t.Fatalf("file value lost: %q", cfg.DownloadDir)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "nope")
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid port")
	}
}

func TestLoad_ExplicitMissingPathErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for missing explicit config %s", path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error without API key")
	}
	if !strings.Contains(err.Error(), EnvAPIKey) {
		t.Fatalf("error should name the env var: %v", err)
	}

	cfg.GeminiAPIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
