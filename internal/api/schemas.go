package api

import (
	"encoding/json"
	"net/http"

	"github.com/hookcut/hookcut/internal/types"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type ProposeRequest struct {
	SourceURL      string  `json:"source_url"`
	Count          int     `json:"count,omitempty"`
	MinDurationSec float64 `json:"min_duration_sec,omitempty"`
	MaxDurationSec float64 `json:"max_duration_sec,omitempty"`
	Prompt         string  `json:"prompt,omitempty"`
}

type ProposeResponse struct {
	Summary     string                 `json:"summary"`
	Suggestions []types.ClipSuggestion `json:"suggestions"`
	Dropped     []DroppedElement       `json:"dropped,omitempty"`
}

type DroppedElement struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ExtractResponse struct {
	Summary   string               `json:"summary"`
	Artifacts []types.ClipArtifact `json:"artifacts"`
	Errors    []ClipError          `json:"errors,omitempty"`
}

type ClipError struct {
	Index      int    `json:"index"`
	Diagnostic string `json:"diagnostic"`
}

type ClearResponse struct {
	Summary  string   `json:"summary"`
	Removed  int      `json:"removed"`
	Failures []string `json:"failures,omitempty"`
}

type RefreshResponse struct {
	Summary   string               `json:"summary"`
	Artifacts []types.ClipArtifact `json:"artifacts"`
}

type SuggestionsResponse struct {
	State       string                 `json:"state"`
	Suggestions []types.ClipSuggestion `json:"suggestions"`
}

type ArtifactsResponse struct {
	State     string               `json:"state"`
	Artifacts []types.ClipArtifact `json:"artifacts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Raw   string `json:"raw,omitempty"` // original response text on parse failures
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg, code string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
