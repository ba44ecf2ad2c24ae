// Package extract cuts a batch of suggested segments out of a local media
// file, one encoder invocation per suggestion, isolating failures per item.
package extract

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/types"
)

type Extractor struct {
	encoder  ports.ClipEncoder
	clipsDir string
	log      zerolog.Logger
}

func New(encoder ports.ClipEncoder, clipsDir string, log zerolog.Logger) *Extractor {
	return &Extractor{
		encoder:  encoder,
		clipsDir: clipsDir,
		log:      log.With().Str("component", "extract").Logger(),
	}
}

// ExtractAll processes suggestions strictly in order. Each suggestion is
// independent: a failed encode is recorded and the batch continues. For
// every input exactly one of artifacts/itemErrors gains an entry, so
// len(artifacts)+len(itemErrors) == len(suggestions). The returned error is
// fatal only: unreadable input or unusable output directory, raised before
// any per-item work.
func (e *Extractor) ExtractAll(ctx context.Context, localPath string, suggestions []types.ClipSuggestion) ([]types.ClipArtifact, []*types.ExtractError, error) {
	if _, err := os.Stat(localPath); err != nil {
		return nil, nil, &types.IOError{Path: localPath, Err: err}
	}
	if err := os.MkdirAll(e.clipsDir, 0o755); err != nil {
		return nil, nil, &types.IOError{Path: e.clipsDir, Err: err}
	}

	var (
		artifacts []types.ClipArtifact
		itemErrs  []*types.ExtractError
	)
	for i, s := range suggestions {
		idx := i + 1

		duration := s.End - s.Start
		if duration <= 0 {
			itemErrs = append(itemErrs, &types.ExtractError{
				Index:      idx,
				Diagnostic: "non-positive duration",
			})
			continue
		}

		outPath := filepath.Join(e.clipsDir, ClipFilename(idx, s.Title, s.Start, s.End))
		e.log.Info().
			Int("clip", idx).
			Float64("start", s.Start).
			Float64("duration", duration).
			Str("output", outPath).
			Msg("extracting clip")

		if err := e.encoder.Cut(ctx, localPath, s.Start, duration, outPath); err != nil {
			e.log.Warn().Int("clip", idx).Err(err).Msg("clip extraction failed")
			itemErrs = append(itemErrs, &types.ExtractError{
				Index:      idx,
				Diagnostic: err.Error(),
			})
			continue
		}

		artifacts = append(artifacts, types.ClipArtifact{
			Index: idx,
			Path:  outPath,
			Start: s.Start,
			End:   s.End,
			Title: s.Title,
		})
	}

	e.log.Info().
		Int("succeeded", len(artifacts)).
		Int("failed", len(itemErrs)).
		Msg("extraction batch done")
	return artifacts, itemErrs, nil
}
