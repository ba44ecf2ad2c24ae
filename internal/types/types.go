package types

// ClipSuggestion is one AI-proposed hook segment. Start and End are seconds
// from the beginning of the source media; End must be strictly greater than
// Start. Duration is whatever the model reported and is never authoritative:
// extraction always recomputes end-start.
type ClipSuggestion struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration,omitempty"`
}

// ClipArtifact is one cut file produced on disk.
type ClipArtifact struct {
	Index int     `json:"index"` // 1-based position in the suggestion set
	Path  string  `json:"path"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Title string  `json:"title"`
}

// MediaReference tracks the current source: the URL the user gave and, once
// fetched, the local file it was downloaded to. The old path is abandoned,
// not deleted, when a new fetch overwrites it.
type MediaReference struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path,omitempty"`
}
