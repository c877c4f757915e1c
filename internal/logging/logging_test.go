package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := ContextWithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatal("expected the attached logger back")
	}
	if FromContext(context.Background()) != nil {
		t.Fatal("expected nil for a bare context")
	}
	if got := ContextWithLogger(context.Background(), nil); FromContext(got) != nil {
		t.Fatal("expected a nil logger to leave the context unchanged")
	}
}

func TestOperationPrefersContextLogger(t *testing.T) {
	var fromCtx, fallback bytes.Buffer
	ctx := ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(&fromCtx, nil)))

	Operation(ctx, slog.New(slog.NewTextHandler(&fallback, nil)), "reservation", "commit", "ref", "TT1000").
		Info("reservation confirmed")

	out := fromCtx.String()
	for _, want := range []string{"service=reservation", "operation=commit", "ref=TT1000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
	if fallback.Len() != 0 {
		t.Fatalf("fallback logger received output despite a context logger: %q", fallback.String())
	}
}

func TestOperationFallsBack(t *testing.T) {
	var buf bytes.Buffer

	Operation(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)), "availability", "", "date", "2025-06-02").
		Info("slots queried")

	out := buf.String()
	if !strings.Contains(out, "service=availability") {
		t.Fatalf("expected service attribute, got %q", out)
	}
	if strings.Contains(out, "operation=") {
		t.Fatalf("blank operation must be omitted, got %q", out)
	}
	if !strings.Contains(out, "date=2025-06-02") {
		t.Fatalf("expected date attribute, got %q", out)
	}
}
