// Package gemini adapts the Google generative AI service to the
// SegmentProposer port. The request pins the response to a JSON array schema
// of {title, start, end, description?}; the model still gets to misbehave,
// so the returned text goes through defensive parsing downstream.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/types"
)

const (
	maxAttempts = 3
	baseBackoff = 2 * time.Second

	requestTimeout = 5 * time.Minute
)

// DefaultInstruction is the built-in instruction block, used when the caller
// supplies no override.
const DefaultInstruction = `You are an AI assistant that analyzes videos (webinars, interviews, product demos, or panels) to extract high-engagement clips for marketing videos.

Your task:
- Watch the video and identify strong hook moments.
- Output a JSON array where each item has:
  - start: float (clip start time in seconds)
  - end: float (clip end time in seconds)
  - title: short, curiosity-driven 3-7 word title
  - description: 1 sentence that explains why it is a strong hook

Rules:
- All timestamps are seconds from the start of the video.
- Prioritize bold claims, surprises, quantified outcomes, aha moments, objections flipped, or ROI stakes.
- Respect the requested number and duration of clips.
- Exclude filler, tangents, and hedging.
- Return ONLY valid JSON. No text outside the JSON.`

type Adapter struct {
	apiKey  string
	model   string
	log     zerolog.Logger
	backoff time.Duration
	sleep   func(context.Context, time.Duration) error

	// generate is swapped out in tests; the default dials the real service.
	generate func(ctx context.Context, parts []genai.Part) (string, error)
}

func New(apiKey, model string, log zerolog.Logger) *Adapter {
	a := &Adapter{
		apiKey:  apiKey,
		model:   model,
		log:     log.With().Str("component", "gemini").Logger(),
		backoff: baseBackoff,
		sleep:   sleepCtx,
	}
	a.generate = a.callService
	return a
}

func (a *Adapter) Propose(ctx context.Context, req ports.ProposeRequest) (string, error) {
	if req.Count < 1 {
		return "", fmt.Errorf("count must be >= 1, got %d", req.Count)
	}
	if req.MinDurationSec <= 0 || req.MinDurationSec > req.MaxDurationSec {
		return "", fmt.Errorf("invalid duration bounds %v-%v", req.MinDurationSec, req.MaxDurationSec)
	}

	parts := buildParts(req)

	var lastErr error
	delay := a.backoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := a.generate(ctx, parts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isTransient(err) {
			a.log.Debug().Err(err).Msg("non-retryable service error")
			return "", &types.ServiceError{Attempts: attempt, Err: err}
		}
		if attempt == maxAttempts {
			break
		}

		a.log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", delay).Msg("transient service error, retrying")
		if err := a.sleep(ctx, delay); err != nil {
			return "", &types.ServiceError{Attempts: attempt, Err: err}
		}
		delay *= 2
	}
	return "", &types.ServiceError{Attempts: maxAttempts, Err: lastErr}
}

func buildParts(req ports.ProposeRequest) []genai.Part {
	instruction := strings.TrimSpace(req.PromptOverride)
	if instruction == "" {
		instruction = DefaultInstruction
	}
	directive := fmt.Sprintf("Extract %d clips, each %g-%g seconds long.",
		req.Count, req.MinDurationSec, req.MaxDurationSec)

	return []genai.Part{
		genai.Text(instruction),
		genai.FileData{URI: req.SourceURL},
		genai.Text(directive),
	}
}

// suggestionSchema pins the response body to an ordered array of suggestion
// objects. Description stays optional.
func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString},
				"start":       {Type: genai.TypeNumber, Description: "clip start, seconds"},
				"end":         {Type: genai.TypeNumber, Description: "clip end, seconds"},
				"description": {Type: genai.TypeString},
			},
			Required: []string{"title", "start", "end"},
		},
	}
}

func (a *Adapter) callService(ctx context.Context, parts []genai.Part) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	client, err := genai.NewClient(reqCtx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = suggestionSchema()

	resp, err := model.GenerateContent(reqCtx, parts...)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("gemini: empty response content")
	}
	return b.String(), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
