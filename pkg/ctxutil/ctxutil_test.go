package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-42")

	if got := RequestIDFromCtx(ctx); got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestClientIP_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithClientIP(context.Background(), "10.0.0.7")

	got, ok := ClientIPFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != "10.0.0.7" {
		t.Fatalf("expected 10.0.0.7, got %q", got)
	}
}

func TestClientIPFromCtx_Missing(t *testing.T) {
	t.Parallel()

	tests := map[string]context.Context{
		"empty context": context.Background(),
		"empty value":   WithClientIP(context.Background(), ""),
		"wrong type":    context.WithValue(context.Background(), clientIPKey, 42),
	}
	for name, ctx := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got, ok := ClientIPFromCtx(ctx); ok || got != "" {
				t.Fatalf("expected (\"\", false), got (%q, %v)", got, ok)
			}
		})
	}
}
