// Package suggest turns raw AI response text into an ordered set of clip
// suggestions. Models are asked for a bare JSON array but do not always
// comply, so parsing is a fallback chain over the common malformed shapes.
package suggest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hookcut/hookcut/internal/types"
)

// Result is a parsed suggestion set plus per-element validation notes for
// the elements that were dropped. Dropping is per-element: one bad element
// never rejects the rest of the set.
type Result struct {
	Suggestions []types.ClipSuggestion
	Dropped     []*types.ValidationError
}

var fencedJSONRE = regexp.MustCompile("(?s)```(?:json|JSON)\\s*(\\[.*?\\])\\s*```")

// Parse extracts suggestions from raw response text. Strategies, in order:
// the whole text as a JSON array, a fenced code block labeled json, then the
// first-to-last bracket span anywhere in the text. If all three fail the
// returned ParseError retains the original text.
func Parse(raw string) (Result, error) {
	for _, candidate := range arrayCandidates(raw) {
		// A bare "null" unmarshals into a nil slice without error; only a
		// literal array counts as found.
		if !strings.HasPrefix(candidate, "[") {
			continue
		}
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &elems); err != nil {
			continue
		}
		return validate(elems), nil
	}
	return Result{}, &types.ParseError{Raw: raw}
}

// arrayCandidates returns the texts to try as a JSON array, most specific
// first. Order matters: a fenced block inside prose must win over the loose
// bracket scan, which would pick up the same span anyway.
func arrayCandidates(raw string) []string {
	out := []string{strings.TrimSpace(raw)}

	if m := fencedJSONRE.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}

	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			out = append(out, raw[start:end+1])
		}
	}
	return out
}

// element mirrors one array entry. Pointers distinguish absent from zero so
// a missing start/end is rejected rather than read as 0.
type element struct {
	Start       *float64 `json:"start"`
	End         *float64 `json:"end"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"`
}

func validate(elems []json.RawMessage) Result {
	res := Result{Suggestions: make([]types.ClipSuggestion, 0, len(elems))}
	for i, rawElem := range elems {
		idx := i + 1

		var el element
		if err := json.Unmarshal(rawElem, &el); err != nil {
			res.Dropped = append(res.Dropped, &types.ValidationError{
				Index:  idx,
				Reason: "start and end must be numbers",
			})
			continue
		}
		if el.Start == nil || el.End == nil {
			res.Dropped = append(res.Dropped, &types.ValidationError{
				Index:  idx,
				Reason: "missing numeric start or end",
			})
			continue
		}
		if *el.Start < 0 {
			res.Dropped = append(res.Dropped, &types.ValidationError{
				Index:  idx,
				Reason: fmt.Sprintf("negative start %v", *el.Start),
			})
			continue
		}
		if *el.End <= *el.Start {
			res.Dropped = append(res.Dropped, &types.ValidationError{
				Index:  idx,
				Reason: fmt.Sprintf("end %v is not after start %v", *el.End, *el.Start),
			})
			continue
		}

		title := strings.TrimSpace(el.Title)
		if title == "" {
			title = fmt.Sprintf("Clip %d", idx)
		}

		res.Suggestions = append(res.Suggestions, types.ClipSuggestion{
			Start:       *el.Start,
			End:         *el.End,
			Title:       title,
			Description: strings.TrimSpace(el.Description),
			Duration:    *el.End - *el.Start,
		})
	}
	return res
}
