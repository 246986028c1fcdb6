package repository

import (
	"fmt"
	"testing"
	"time"

	"story-relay/internal/storage"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqIDs struct {
	prefix string
	n      int
}

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

func newTestBackend(t *testing.T) *storage.FileBackend {
	t.Helper()
	return storage.NewFileBackend(t.TempDir())
}

func testClock() *fixedClock {
	return &fixedClock{now: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)}
}
