package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *Store[record] {
	t.Helper()
	store, err := NewStore[record](t.TempDir(), "records.json", "records", true)
	require.NoError(t, err)
	return store
}

func TestStore_ReadAll_MissingFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	items, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_WriteThenRead(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	in := []record{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	require.NoError(t, store.WriteAll(ctx, in))

	out, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_CorruptedFileTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore[record](dir, "records.json", "records", false)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json"), 0o644))

	items, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// a subsequent write starts over from the empty list
	require.NoError(t, store.Mutate(ctx, func(items []record) ([]record, bool, error) {
		return append(items, record{ID: "1", Name: "fresh"}), true, nil
	}))

	out, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].Name)
}

func TestStore_MutateSkipsWrite(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.WriteAll(ctx, []record{{ID: "1", Name: "keep"}}))

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.Mutate(ctx, func(items []record) ([]record, bool, error) {
		items[0].Name = "discarded"
		return items, false, nil
	}))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_MutatePropagatesError(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	sentinel := errors.New("boom")

	err := store.Mutate(ctx, func(items []record) ([]record, bool, error) {
		return nil, false, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestStore_CancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
