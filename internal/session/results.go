package session

import (
	"fmt"

	"github.com/hookcut/hookcut/internal/types"
)

// ProposeResult carries the replaced suggestion set, the per-element
// validation notes for dropped entries, and the raw response text for
// display.
type ProposeResult struct {
	Suggestions []types.ClipSuggestion
	Dropped     []*types.ValidationError
	Raw         string
}

func (r ProposeResult) Summary() string {
	if len(r.Dropped) == 0 {
		return fmt.Sprintf("found %d clip suggestion(s)", len(r.Suggestions))
	}
	return fmt.Sprintf("found %d clip suggestion(s), dropped %d invalid element(s)",
		len(r.Suggestions), len(r.Dropped))
}

// ExtractResult reports both sides of the batch; partial success is always
// distinguishable from total success or total failure by the two counts.
type ExtractResult struct {
	Artifacts []types.ClipArtifact
	Errors    []*types.ExtractError
}

func (r ExtractResult) Summary() string {
	switch {
	case len(r.Errors) == 0:
		return fmt.Sprintf("created %d clip(s)", len(r.Artifacts))
	case len(r.Artifacts) == 0:
		return fmt.Sprintf("all %d clip(s) failed", len(r.Errors))
	default:
		return fmt.Sprintf("created %d clip(s), %d failed", len(r.Artifacts), len(r.Errors))
	}
}

type ClearResult struct {
	Removed  int
	Failures []string
}

func (r ClearResult) Summary() string {
	if len(r.Failures) == 0 {
		return fmt.Sprintf("removed %d file(s)", r.Removed)
	}
	return fmt.Sprintf("removed %d file(s), %d could not be removed", r.Removed, len(r.Failures))
}

type RefreshResult struct {
	Artifacts []types.ClipArtifact
}

func (r RefreshResult) Summary() string {
	return fmt.Sprintf("found %d clip file(s) on disk", len(r.Artifacts))
}
