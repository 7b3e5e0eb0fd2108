package history

import (
	"context"
	"testing"
	"time"

	"romdex/internal/testsupport"
)

// A start on an exact second boundary must still sort before one a fraction
// of a second later; textual RFC 3339 ordering got this wrong when the
// fractional part was trimmed.
func TestListRunsOrdersSubsecondStarts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	boundary := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	earlier, err := store.beginRunAt(ctx, "scan", "/roms", false, boundary)
	if err != nil {
		t.Fatalf("beginRunAt: %v", err)
	}
	later, err := store.beginRunAt(ctx, "scan", "/roms", false, boundary.Add(250*time.Millisecond))
	if err != nil {
		t.Fatalf("beginRunAt: %v", err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d", len(runs))
	}
	if runs[0].ID != later || runs[1].ID != earlier {
		t.Fatalf("order = %s, %s", runs[0].ID, runs[1].ID)
	}
	if !runs[1].StartedAt.Equal(boundary) {
		t.Fatalf("started at = %v", runs[1].StartedAt)
	}
}
