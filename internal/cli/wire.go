package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hookcut/hookcut/internal/config"
	"github.com/hookcut/hookcut/internal/extract"
	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/ports/adapters/ffmpeg"
	"github.com/hookcut/hookcut/internal/ports/adapters/gemini"
	"github.com/hookcut/hookcut/internal/ports/adapters/ytdlp"
	"github.com/hookcut/hookcut/internal/session"
)

// loadConfig resolves config for a command, requiring the API key only for
// commands that talk to the AI service.
func loadConfig(path string, needAPIKey bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if needAPIKey {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("config: %w", err)
		}
	}
	return cfg, nil
}

func buildDeps(cfg config.Config) session.Deps {
	logger := log.Logger
	encoder := ffmpeg.New(cfg.FFmpegPath, logger)

	return session.Deps{
		Proposer:  gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, logger),
		Fetcher:   ytdlp.New(cfg.YtdlpPath, cfg.DownloadDir, logger),
		Extractor: extract.New(encoder, cfg.ClipsDir(), logger),
		ClipsDir:  cfg.ClipsDir(),
		Log:       logger,
	}
}

// ensure adapters implement ports
var (
	_ ports.SegmentProposer = (*gemini.Adapter)(nil)
	_ ports.MediaFetcher    = (*ytdlp.Adapter)(nil)
	_ ports.ClipEncoder     = (*ffmpeg.Adapter)(nil)
)
