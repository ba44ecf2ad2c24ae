// Package ffmpeg adapts the ffmpeg binary to the ClipEncoder port.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Adapter struct {
	ffmpeg string
	log    zerolog.Logger
}

func New(ffmpegPath string, log zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{
		ffmpeg: ffmpegPath,
		log:    log.With().Str("component", "ffmpeg").Logger(),
	}
}

// Cut extracts [start, start+duration) into outPath. Stream copy would be
// faster but lands on the nearest keyframe, so the cut re-encodes and forces
// a keyframe at t=0: outputs must be frame-accurate and independently
// seekable from the first frame.
func (a *Adapter) Cut(ctx context.Context, inPath string, startSec, durationSec float64, outPath string) error {
	args := cutArgs(inPath, startSec, durationSec, outPath)
	a.log.Debug().Str("cmd", a.ffmpeg).Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = err.Error()
		}
		return errors.New(diag)
	}
	return nil
}

func cutArgs(inPath string, startSec, durationSec float64, outPath string) []string {
	return []string{
		"-y",
		"-ss", fmtSeconds(startSec),
		"-i", inPath,
		"-t", fmtSeconds(durationSec),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-preset", "fast",
		"-crf", "23",
		"-avoid_negative_ts", "make_zero",
		"-force_key_frames", "expr:gte(t,0)",
		outPath,
	}
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
