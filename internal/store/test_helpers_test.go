package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/weekreview/internal/testutil"
)

// createTestStore opens a fresh store in a temp dir with deterministic
// IDs and timestamps.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	clock := testutil.NewSteppingClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC), time.Second)
	s, err := Open(dbPath, WithClock(clock), WithIDGenerator(testutil.NewSequenceIDGenerator("")))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
