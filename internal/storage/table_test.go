package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

type failingBackend struct{}

func (failingBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingBackend) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestTableFileBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing file reads as empty", func(t *testing.T) {
		table := NewTable[record](NewFileBackend(t.TempDir()), "records", zap.NewNop())
		got := table.Read(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Write creates directory and round-trips in order", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		backend := NewFileBackend(dir)
		table := NewTable[record](backend, "records", zap.NewNop())

		want := []record{{ID: "b", Value: 2}, {ID: "a", Value: 1}, {ID: "c", Value: 3}}
		require.NoError(t, table.Write(ctx, want))

		assert.Equal(t, want, table.Read(ctx))
		raw, err := os.ReadFile(backend.Path("records"))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "\n  {\n    \"id\": \"b\"")
	})

	t.Run("Nil slice is written as empty array", func(t *testing.T) {
		backend := NewFileBackend(t.TempDir())
		table := NewTable[record](backend, "records", zap.NewNop())
		require.NoError(t, table.Write(ctx, nil))

		raw, err := os.ReadFile(backend.Path("records"))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("Corrupt file reads as empty", func(t *testing.T) {
		backend := NewFileBackend(t.TempDir())
		require.NoError(t, backend.Save(ctx, "records", []byte("{not json")))
		table := NewTable[record](backend, "records", zap.NewNop())
		assert.Empty(t, table.Read(ctx))
	})

	t.Run("JSON null reads as empty", func(t *testing.T) {
		backend := NewFileBackend(t.TempDir())
		require.NoError(t, backend.Save(ctx, "records", []byte("null")))
		table := NewTable[record](backend, "records", zap.NewNop())
		got := table.Read(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTableBackendFailures(t *testing.T) {
	ctx := context.Background()
	table := NewTable[record](failingBackend{}, "records", zap.NewNop())

	assert.Empty(t, table.Read(ctx))
	err := table.Write(ctx, []record{{ID: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records")
}

func TestFileBackendLoadMissing(t *testing.T) {
	_, err := NewFileBackend(t.TempDir()).Load(context.Background(), "users")
	assert.ErrorIs(t, err, ErrTableNotFound)
}
