// Package config loads hookcut configuration from an optional YAML file with
// environment variable overrides. The Gemini API key comes from the
// environment only: there is deliberately no baked-in fallback.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	EnvAPIKey      = "HOOKCUT_GEMINI_API_KEY"
	EnvModel       = "HOOKCUT_GEMINI_MODEL"
	EnvDownloadDir = "HOOKCUT_DOWNLOAD_DIR"
	EnvYtdlpPath   = "HOOKCUT_YTDLP_PATH"
	EnvFFmpegPath  = "HOOKCUT_FFMPEG_PATH"
	EnvPort        = "HOOKCUT_PORT"

	DefaultModel       = "models/gemini-2.5-flash"
	DefaultDownloadDir = "downloads"
	DefaultPort        = 8686
)

type Config struct {
	GeminiAPIKey string `yaml:"-"` // env only, never read from file
	GeminiModel  string `yaml:"gemini_model"`

	DownloadDir string `yaml:"download_dir"`

	YtdlpPath  string `yaml:"ytdlp_path"`
	FFmpegPath string `yaml:"ffmpeg_path"`

	Port int `yaml:"port"`
}

// ClipsDir is the subdirectory of DownloadDir holding produced artifacts.
func (c Config) ClipsDir() string {
	return filepath.Join(c.DownloadDir, "clips")
}

func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%s is required (set it in the environment or .env)", EnvAPIKey)
	}
	if c.GeminiModel == "" {
		return errors.New("gemini model is empty")
	}
	if c.DownloadDir == "" {
		return errors.New("download dir is empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Load builds the config: defaults, then an optional YAML file (explicit path
// or a discovered config.yaml), then environment overrides.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.GeminiAPIKey = os.Getenv(EnvAPIKey)
	if v := os.Getenv(EnvModel); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv(EnvDownloadDir); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv(EnvYtdlpPath); v != "" {
		cfg.YtdlpPath = v
	}
	if v := os.Getenv(EnvFFmpegPath); v != "" {
		cfg.FFmpegPath = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		GeminiModel: DefaultModel,
		DownloadDir: DefaultDownloadDir,
		YtdlpPath:   "yt-dlp",
		FFmpegPath:  "ffmpeg",
		Port:        DefaultPort,
	}
}

func findConfigFile() string {
	candidates := []string{
		"./hookcut.yaml",
		"./hookcut.yml",
		filepath.Join(os.Getenv("HOME"), ".hookcut", "config.yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
