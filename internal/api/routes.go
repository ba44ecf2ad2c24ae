package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/session"
	"github.com/hookcut/hookcut/internal/types"
)

// Defaults for propose requests that omit the knobs, mirroring the CLI
// defaults.
const (
	DefaultClipCount   = 5
	DefaultMinDuration = 5.0
	DefaultMaxDuration = 10.0
)

type ServerConfig struct {
	Port       int
	NewSession func() *session.Session
	Logger     zerolog.Logger
	Metrics    *Metrics
	StartTime  time.Time
}

// sessionStore is the only concurrently shared state in the API layer.
// Sessions themselves serialize their own actions.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	create   func() *session.Session
}

func (s *sessionStore) add() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = s.create()
	s.mu.Unlock()
	return id
}

func (s *sessionStore) get(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func NewRouter(cfg ServerConfig) *chi.Mux {
	store := &sessionStore{
		sessions: make(map[string]*session.Session),
		create:   cfg.NewSession,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.RequestMiddleware())
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Get("/health", healthHandler(cfg))
	r.Post("/sessions", createSessionHandler(store))
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Post("/propose", proposeHandler(store, cfg.Metrics))
		r.Post("/extract", extractHandler(store, cfg.Metrics))
		r.Post("/clear", clearHandler(store))
		r.Post("/refresh", refreshHandler(store))
		r.Get("/suggestions", suggestionsHandler(store))
		r.Get("/artifacts", artifactsHandler(store))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: "0.1.0",
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func createSessionHandler(store *sessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: store.add()})
	}
}

func proposeHandler(store *sessionStore, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}

		var req ProposeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if strings.TrimSpace(req.SourceURL) == "" {
			WriteError(w, http.StatusBadRequest, "source_url is required", "BAD_REQUEST")
			return
		}
		if req.Count == 0 {
			req.Count = DefaultClipCount
		}
		if req.MinDurationSec == 0 {
			req.MinDurationSec = DefaultMinDuration
		}
		if req.MaxDurationSec == 0 {
			req.MaxDurationSec = DefaultMaxDuration
		}

		res, err := sess.Propose(r.Context(), ports.ProposeRequest{
			SourceURL:      req.SourceURL,
			Count:          req.Count,
			MinDurationSec: req.MinDurationSec,
			MaxDurationSec: req.MaxDurationSec,
			PromptOverride: req.Prompt,
		})
		if err != nil {
			writeActionError(w, err)
			return
		}
		if metrics != nil {
			metrics.IncProposals()
		}

		dropped := make([]DroppedElement, 0, len(res.Dropped))
		for _, d := range res.Dropped {
			dropped = append(dropped, DroppedElement{Index: d.Index, Reason: d.Reason})
		}
		WriteJSON(w, http.StatusOK, ProposeResponse{
			Summary:     res.Summary(),
			Suggestions: res.Suggestions,
			Dropped:     dropped,
		})
	}
}

func extractHandler(store *sessionStore, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}

		res, err := sess.Extract(r.Context())
		if err != nil {
			writeActionError(w, err)
			return
		}
		if metrics != nil {
			metrics.AddClipsCut(len(res.Artifacts))
			metrics.AddClipsFailed(len(res.Errors))
		}

		clipErrs := make([]ClipError, 0, len(res.Errors))
		for _, e := range res.Errors {
			clipErrs = append(clipErrs, ClipError{Index: e.Index, Diagnostic: e.Diagnostic})
		}
		WriteJSON(w, http.StatusOK, ExtractResponse{
			Summary:   res.Summary(),
			Artifacts: res.Artifacts,
			Errors:    clipErrs,
		})
	}
}

func clearHandler(store *sessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}
		res, err := sess.Clear(r.Context())
		if err != nil {
			writeActionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ClearResponse{
			Summary:  res.Summary(),
			Removed:  res.Removed,
			Failures: res.Failures,
		})
	}
}

func refreshHandler(store *sessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}
		res, err := sess.Refresh()
		if err != nil {
			writeActionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, RefreshResponse{
			Summary:   res.Summary(),
			Artifacts: res.Artifacts,
		})
	}
}

func suggestionsHandler(store *sessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, SuggestionsResponse{
			State:       string(sess.State()),
			Suggestions: sess.Suggestions(),
		})
	}
}

func artifactsHandler(store *sessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.get(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, ArtifactsResponse{
			State:     string(sess.State()),
			Artifacts: sess.Artifacts(),
		})
	}
}

// writeActionError maps the error taxonomy onto HTTP statuses, keeping the
// raw response text visible on parse failures for diagnosis.
func writeActionError(w http.ResponseWriter, err error) {
	var parseErr *types.ParseError
	if errors.As(err, &parseErr) {
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: parseErr.Error(),
			Code:  "PARSE_ERROR",
			Raw:   parseErr.Raw,
		})
		return
	}
	var svcErr *types.ServiceError
	if errors.As(err, &svcErr) {
		WriteError(w, http.StatusBadGateway, svcErr.Error(), "SERVICE_ERROR")
		return
	}
	var fetchErr *types.FetchError
	if errors.As(err, &fetchErr) {
		WriteError(w, http.StatusBadGateway, fetchErr.Error(), "FETCH_ERROR")
		return
	}
	var ioErr *types.IOError
	if errors.As(err, &ioErr) {
		WriteError(w, http.StatusInternalServerError, ioErr.Error(), "IO_ERROR")
		return
	}
	if errors.Is(err, session.ErrNoSuggestions) {
		WriteError(w, http.StatusConflict, err.Error(), "NO_SUGGESTIONS")
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
}
