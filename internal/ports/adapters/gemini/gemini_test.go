package gemini

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"

	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/types"
)

func testAdapter(generate func(ctx context.Context, parts []genai.Part) (string, error)) *Adapter {
	a := New("test-key", "models/test", zerolog.Nop())
	a.generate = generate
	a.backoff = time.Microsecond
	return a
}

func validRequest() ports.ProposeRequest {
	return ports.ProposeRequest{
		SourceURL:      "https://example.com/watch?v=abc",
		Count:          5,
		MinDurationSec: 5,
		MaxDurationSec: 10,
	}
}

func TestPropose_Success(t *testing.T) {
	t.Parallel()

	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		return `[{"title":"Hook","start":0,"end":5}]`, nil
	})
	raw, err := a.Propose(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if !strings.Contains(raw, "Hook") {
		t.Fatalf("unexpected raw text: %q", raw)
	}
}

func TestPropose_TransientExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		calls++
		return "", syscall.ECONNRESET
	})

	_, err := a.Propose(context.Background(), validRequest())
	var svcErr *types.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Attempts != 3 {
		t.Fatalf("attempts = %d, want 3", svcErr.Attempts)
	}
	if calls != 3 {
		t.Fatalf("service called %d times, want 3", calls)
	}
	if !errors.Is(svcErr, syscall.ECONNRESET) {
		t.Fatalf("last cause lost: %v", svcErr)
	}
}

func TestPropose_TransientRecovers(t *testing.T) {
	t.Parallel()

	calls := 0
	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		calls++
		if calls < 3 {
			return "", syscall.ECONNREFUSED
		}
		return "[]", nil
	})

	raw, err := a.Propose(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if raw != "[]" || calls != 3 {
		t.Fatalf("raw=%q calls=%d", raw, calls)
	}
}

func TestPropose_NonTransientFailsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		calls++
		return "", &googleapi.Error{Code: 401, Message: "invalid credentials"}
	})

	_, err := a.Propose(context.Background(), validRequest())
	var svcErr *types.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", svcErr.Attempts)
	}
	if calls != 1 {
		t.Fatalf("retried a non-transient error: %d calls", calls)
	}
}

func TestPropose_BackoffDoubles(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		return "", syscall.ECONNRESET
	})
	a.backoff = 2 * time.Second
	a.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, _ = a.Propose(context.Background(), validRequest())
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("slept %d times, want %d", len(delays), len(want))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("delay %d = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestPropose_RejectsBadBounds(t *testing.T) {
	t.Parallel()

	a := testAdapter(func(ctx context.Context, parts []genai.Part) (string, error) {
		t.Fatal("service must not be called")
		return "", nil
	})

	cases := []ports.ProposeRequest{
		{SourceURL: "u", Count: 0, MinDurationSec: 5, MaxDurationSec: 10},
		{SourceURL: "u", Count: 3, MinDurationSec: 0, MaxDurationSec: 10},
		{SourceURL: "u", Count: 3, MinDurationSec: 12, MaxDurationSec: 10},
	}
	for _, req := range cases {
		if _, err := a.Propose(context.Background(), req); err == nil {
			t.Fatalf("expected error for %+v", req)
		}
	}
}

func TestBuildParts(t *testing.T) {
	t.Parallel()

	req := validRequest()
	parts := buildParts(req)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if string(parts[0].(genai.Text)) != DefaultInstruction {
		t.Fatalf("expected default instruction as first part")
	}
	fd, ok := parts[1].(genai.FileData)
	if !ok || fd.URI != req.SourceURL {
		t.Fatalf("expected source URI part, got %#v", parts[1])
	}
	directive := string(parts[2].(genai.Text))
	if directive != "Extract 5 clips, each 5-10 seconds long." {
		t.Fatalf("unexpected directive: %q", directive)
	}
}

func TestBuildParts_PromptOverride(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.PromptOverride = "  pick only product demos  "
	parts := buildParts(req)
	if string(parts[0].(genai.Text)) != "pick only product demos" {
		t.Fatalf("override not used verbatim after trimming: %q", parts[0])
	}

	req.PromptOverride = "   "
	parts = buildParts(req)
	if string(parts[0].(genai.Text)) != DefaultInstruction {
		t.Fatalf("blank override must fall back to the default instruction")
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"reset", syscall.ECONNRESET, true},
		{"refused", syscall.ECONNREFUSED, true},
		{"eof", errors.New("unexpected EOF while reading"), false},
		{"wrapped reset", errors.New("rpc failed: connection reset by peer"), true},
		{"server 503", &googleapi.Error{Code: 503}, true},
		{"client 400", &googleapi.Error{Code: 400}, false},
		{"unauthorized", &googleapi.Error{Code: 401}, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := isTransient(tc.err); got != tc.want {
				t.Fatalf("isTransient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
