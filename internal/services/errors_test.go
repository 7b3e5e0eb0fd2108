package services_test

import (
	"errors"
	"testing"

	"romdex/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrParse, "catalog", "load source", "malformed document", base)
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapDefaultsToIO(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io marker fallback, got %v", err)
	}
	if err.Error() != "io error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	err := services.Wrap(services.ErrNotFound, "catalog", "lookup", "no match", nil)
	if !services.IsNotFound(err) {
		t.Fatal("expected not-found classification")
	}
	if services.IsNotFound(errors.New("other")) {
		t.Fatal("unexpected not-found classification")
	}
}
