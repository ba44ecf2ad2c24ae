//go:build integration

package itest

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name         string
	args         []string
	env          map[string]string
	wantContains []string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	bin := buildCLI(t, repoRoot)

	cases := []robustCase{
		{
			name:         "suggest without url",
			args:         []string{"suggest"},
			wantContains: []string{"accepts 1 arg(s), received 0"},
		},
		{
			name:         "suggest extra args",
			args:         []string{"suggest", "https://example.com/v", "extra"},
			wantContains: []string{"accepts 1 arg(s), received 2"},
		},
		{
			name:         "suggest missing api key",
			args:         []string{"suggest", "https://example.com/v"},
			env:          map[string]string{"HOOKCUT_GEMINI_API_KEY": ""},
			wantContains: []string{"HOOKCUT_GEMINI_API_KEY is required"},
		},
		{
			name:         "run rejects inverted bounds",
			args:         []string{"run", "https://example.com/v", "--min", "20", "--max", "10"},
			env:          map[string]string{"HOOKCUT_GEMINI_API_KEY": "test-key"},
			wantContains: []string{"invalid duration bounds"},
		},
		{
			name:         "run rejects zero clips",
			args:         []string{"run", "https://example.com/v", "--clips", "0"},
			env:          map[string]string{"HOOKCUT_GEMINI_API_KEY": "test-key"},
			wantContains: []string{"clips must be >= 1"},
		},
		{
			name:         "extract missing suggestions file",
			args:         []string{"extract", "https://example.com/v", "--suggestions", "does-not-exist.json"},
			wantContains: []string{"read suggestions"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			out, code := runCLI(t, bin, tc.args, tc.env)
			if code == 0 {
				t.Fatalf("expected non-zero exit, output:\n%s", out)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(out, want) {
					t.Fatalf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func buildCLI(t *testing.T, repoRoot string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "hookcut")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/hookcut")
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	return bin
}

func runCLI(t *testing.T, bin string, args []string, env map[string]string) (string, int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = t.TempDir() // keep any .env or hookcut.yaml in the repo out of play
	cmd.Env = []string{"PATH=" + t.TempDir()}
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()

	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("run cli: %v\n%s", err, buf.String())
	}
	return buf.String(), code
}
