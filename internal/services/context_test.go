package services_test

import (
	"context"
	"testing"

	"romdex/internal/services"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on a fresh context")
	}

	ctx = services.WithRunID(ctx, "run-42")
	id, ok := services.RunIDFromContext(ctx)
	if !ok || id != "run-42" {
		t.Fatalf("run id = %q, ok = %v", id, ok)
	}
}

func TestWithRunIDIgnoresEmpty(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("empty run id should not be stored")
	}
}
