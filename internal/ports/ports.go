package ports

import "context"

// ProposeRequest carries everything the AI service needs to suggest clips.
// PromptOverride, when non-blank after trimming, replaces the built-in
// instruction block verbatim.
type ProposeRequest struct {
	SourceURL      string
	Count          int
	MinDurationSec float64
	MaxDurationSec float64
	PromptOverride string
}

// SegmentProposer asks a generative service for hook suggestions and returns
// the raw response text. The request constrains the response to a JSON array
// schema, but the text is still not guaranteed well-formed: callers must
// parse defensively.
type SegmentProposer interface {
	Propose(ctx context.Context, req ProposeRequest) (string, error)
}

// MediaFetcher downloads a source URL and returns the local file path.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ClipEncoder cuts one sub-clip from a local file. Start and duration are
// seconds. The cut re-encodes for frame accuracy and forces a keyframe at
// t=0 so the output is seekable from the first frame.
type ClipEncoder interface {
	Cut(ctx context.Context, inPath string, startSec, durationSec float64, outPath string) error
}
