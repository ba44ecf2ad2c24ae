// Package ytdlp adapts the yt-dlp binary to the MediaFetcher port.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hookcut/hookcut/internal/types"
)

type Adapter struct {
	bin         string
	downloadDir string
	format      string
	log         zerolog.Logger
}

func New(bin, downloadDir string, log zerolog.Logger) *Adapter {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Adapter{
		bin:         bin,
		downloadDir: downloadDir,
		format:      "best[ext=mp4]",
		log:         log.With().Str("component", "ytdlp").Logger(),
	}
}

// Fetch downloads the URL into the staging directory and returns the final
// local path, taken from yt-dlp's own after-move report so renames done by
// the output template are accounted for.
func (a *Adapter) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(a.downloadDir, 0o755); err != nil {
		return "", &types.IOError{Path: a.downloadDir, Err: err}
	}

	args := []string{
		"-f", a.format,
		"-o", filepath.Join(a.downloadDir, "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	}
	a.log.Debug().Str("cmd", a.bin).Strs("args", args).Msg("executing yt-dlp")

	cmd := exec.CommandContext(ctx, a.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &types.FetchError{
			URL: url,
			Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	path := lastLine(stdout.String())
	if path == "" {
		return "", &types.FetchError{URL: url, Err: fmt.Errorf("yt-dlp reported no output path")}
	}
	a.log.Info().Str("path", path).Msg("download complete")
	return path, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
