package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/hookcut/hookcut/internal/types"
)

func clearDir(ctx context.Context, dir string) ClearResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ClearResult{}
		}
		return ClearResult{Failures: []string{fmt.Sprintf("%s: %v", dir, err)}}
	}

	var res ClearResult
	for _, entry := range entries {
		if ctx.Err() != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("aborted: %v", ctx.Err()))
			return res
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			res.Failures = append(res.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		res.Removed++
	}
	return res
}

var clipNameRE = regexp.MustCompile(`^clip_(\d+)_`)

// sortClipNames orders clip files by their numeric index so clip_10 follows
// clip_2 and refresh output keeps the extraction order. Files without the
// clip prefix sort lexicographically after the indexed ones.
func sortClipNames(names []string) {
	index := func(name string) (int, bool) {
		m := clipNameRE.FindStringSubmatch(name)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	sort.Slice(names, func(i, j int) bool {
		ni, iok := index(names[i])
		nj, jok := index(names[j])
		if iok != jok {
			return iok
		}
		if iok && ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
}

func scanClipsDir(dir string) ([]types.ClipArtifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &types.IOError{Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sortClipNames(names)

	artifacts := make([]types.ClipArtifact, 0, len(names))
	for i, name := range names {
		artifacts = append(artifacts, types.ClipArtifact{
			Index: i + 1,
			Path:  filepath.Join(dir, name),
		})
	}
	return artifacts, nil
}
