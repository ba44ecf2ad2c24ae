package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const maxTitleLen = 30

// ClipFilename derives a deterministic name for one artifact:
// clip_{index}_{sanitizedTitle}_{start}_{end}.mp4. Identical inputs always
// map to the same name; collisions across a batch are only possible for
// adversarial titles and are not deduplicated.
func ClipFilename(index int, title string, startSec, endSec float64) string {
	return fmt.Sprintf("clip_%d_%s_%s_%s.mp4",
		index,
		SanitizeTitle(title),
		fmtSeconds(startSec),
		fmtSeconds(endSec),
	)
}

// SanitizeTitle strips a title down to alphanumerics, spaces, hyphens and
// underscores, truncates to 30 runes, and trims trailing whitespace.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return strings.TrimRight(string(runes), " ")
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
