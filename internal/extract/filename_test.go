package extract

import (
	"strings"
	"testing"
)

func TestClipFilename_Deterministic(t *testing.T) {
	t.Parallel()

	a := ClipFilename(3, "Big Claim!", 12.5, 19)
	b := ClipFilename(3, "Big Claim!", 12.5, 19)
	if a != b {
		t.Fatalf("filename not deterministic: %q vs %q", a, b)
	}
	if a != "clip_3_Big Claim_12.5_19.mp4" {
		t.Fatalf("unexpected filename: %q", a)
	}
}

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Why ROI Doubled":              "Why ROI Doubled",
		"Hooks: the/real\\deal?":       "Hooks therealdeal",
		"under_score-dash ok":          "under_score-dash ok",
		"":                             "",
		"!!!":                          "",
		strings.Repeat("a", 40):        strings.Repeat("a", 30),
		"ends with spaces     ":        "ends with spaces",
		"émoji 🎬 and ünicode letters": "émoji  and ünicode letters",
	}
	for in, want := range tests {
		in, want := in, want
		t.Run(in, func(t *testing.T) {
			if got := SanitizeTitle(in); got != want {
				t.Fatalf("SanitizeTitle(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestSanitizeTitle_TruncatesBeforeTrim(t *testing.T) {
	t.Parallel()

	// 29 chars then spaces: truncation to 30 leaves a trailing space that
	// must be trimmed.
	in := strings.Repeat("x", 29) + "   tail"
	got := SanitizeTitle(in)
	if got != strings.Repeat("x", 29) {
		t.Fatalf("got %q", got)
	}
}

func TestFmtSeconds(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:     "0",
		5:     "5",
		12.5:  "12.5",
		0.125: "0.125",
	}
	for in, want := range tests {
		if got := fmtSeconds(in); got != want {
			t.Fatalf("fmtSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
