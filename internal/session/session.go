// Package session holds the per-session orchestration state: the current
// suggestion set, the current media reference, and the produced artifacts.
// All state lives in an explicit Session value guarded by a mutex, never in
// package globals, so concurrent sessions are safe.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hookcut/hookcut/internal/domain/suggest"
	"github.com/hookcut/hookcut/internal/extract"
	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/types"
)

type State string

const (
	StateIdle      State = "idle"
	StateProposed  State = "proposed"
	StateFetched   State = "fetched"
	StateExtracted State = "extracted"
)

// ErrNoSuggestions is returned by Extract when there is nothing to cut yet.
var ErrNoSuggestions = errors.New("no suggestions: run propose first")

type Deps struct {
	Proposer  ports.SegmentProposer
	Fetcher   ports.MediaFetcher
	Extractor *extract.Extractor
	ClipsDir  string
	Log       zerolog.Logger
}

type Session struct {
	// actionMu serializes the actions themselves. mu only guards the state
	// fields, so readers stay cheap while an action is in flight, but two
	// overlapping extracts must never both fetch or both write the same
	// derived output paths.
	actionMu sync.Mutex

	mu   sync.Mutex
	deps Deps
	log  zerolog.Logger

	state       State
	media       types.MediaReference
	suggestions []types.ClipSuggestion
	artifacts   []types.ClipArtifact
}

func New(deps Deps) *Session {
	return &Session{
		deps:  deps,
		log:   deps.Log.With().Str("component", "session").Logger(),
		state: StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Suggestions() []types.ClipSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ClipSuggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *Session) Artifacts() []types.ClipArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ClipArtifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Propose asks the AI service for suggestions and, on success, replaces the
// current set. Valid from any state. On failure the prior set is untouched
// and the state does not change.
func (s *Session) Propose(ctx context.Context, req ports.ProposeRequest) (ProposeResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	raw, err := s.deps.Proposer.Propose(ctx, req)
	if err != nil {
		return ProposeResult{}, err
	}

	res, err := suggest.Parse(raw)
	if err != nil {
		return ProposeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = res.Suggestions
	if s.media.URL != req.SourceURL {
		// New source: the previously fetched file no longer applies.
		s.media = types.MediaReference{URL: req.SourceURL}
	}
	s.state = StateProposed
	s.log.Info().
		Int("suggestions", len(res.Suggestions)).
		Int("dropped", len(res.Dropped)).
		Msg("suggestions replaced")

	return ProposeResult{
		Suggestions: res.Suggestions,
		Dropped:     res.Dropped,
		Raw:         raw,
	}, nil
}

// Seed replaces the suggestion set from a previously saved run, e.g. a
// suggestions file written by an earlier propose in another process.
func (s *Session) Seed(url string, suggestions []types.ClipSuggestion) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = suggestions
	s.media = types.MediaReference{URL: url}
	if len(suggestions) > 0 {
		s.state = StateProposed
	} else {
		s.state = StateIdle
	}
}

// Extract downloads the current source if needed, then cuts every suggestion
// in order. Valid whenever the suggestion set is non-empty. A fetch failure
// aborts before any extraction and leaves the state unchanged.
func (s *Session) Extract(ctx context.Context) (ExtractResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.mu.Lock()
	suggestions := make([]types.ClipSuggestion, len(s.suggestions))
	copy(suggestions, s.suggestions)
	media := s.media
	s.mu.Unlock()

	if len(suggestions) == 0 {
		return ExtractResult{}, ErrNoSuggestions
	}

	if media.LocalPath == "" {
		path, err := s.deps.Fetcher.Fetch(ctx, media.URL)
		if err != nil {
			return ExtractResult{}, err
		}
		media.LocalPath = path

		s.mu.Lock()
		s.media = media
		s.state = StateFetched
		s.mu.Unlock()
		s.log.Info().Str("path", path).Msg("media fetched")
	}

	artifacts, itemErrs, err := s.deps.Extractor.ExtractAll(ctx, media.LocalPath, suggestions)
	if err != nil {
		return ExtractResult{}, err
	}

	s.mu.Lock()
	s.artifacts = artifacts
	s.state = StateExtracted
	s.mu.Unlock()

	return ExtractResult{Artifacts: artifacts, Errors: itemErrs}, nil
}

// Clear best-effort deletes everything in the clips directory and resets the
// artifact bookkeeping to idle. Individual delete failures are reported, not
// fatal. The suggestion set is retained: clearing outputs does not discard
// suggestions.
func (s *Session) Clear(ctx context.Context) (ClearResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	res := clearDir(ctx, s.deps.ClipsDir)

	s.mu.Lock()
	s.artifacts = nil
	s.state = StateIdle
	s.mu.Unlock()

	s.log.Info().
		Int("removed", res.Removed).
		Int("failed", len(res.Failures)).
		Msg("clips directory cleared")
	return res, nil
}

// Refresh rebuilds the artifact list from whatever files exist on disk,
// recovering bookkeeping after external interference with the clips dir.
func (s *Session) Refresh() (RefreshResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	artifacts, err := scanClipsDir(s.deps.ClipsDir)
	if err != nil {
		return RefreshResult{}, err
	}

	s.mu.Lock()
	s.artifacts = artifacts
	s.mu.Unlock()

	return RefreshResult{Artifacts: artifacts}, nil
}
