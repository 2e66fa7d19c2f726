// Package storage implements the JSON-file-backed entity store. Each entity
// type is persisted as a single JSON array in its own file; every read and
// write is serialized through one mutex per store instance.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"icebreaker/internal/observability"
)

// Store persists one entity type as a whole-file JSON array. Writes replace
// the entire file in a single operation; there is no partial-update protocol
// and no temp-file-then-rename step, so a crash mid-write can leave a
// corrupted file behind. Reads treat such a file as an empty collection.
type Store[T any] struct {
	mu         sync.Mutex
	path       string
	collection string
	indent     bool
}

// NewStore creates a store for one entity type, creating the storage
// directory if it does not exist. collection names the entity type for logs
// and metrics.
func NewStore[T any](dir, fileName, collection string, indent bool) (*Store[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
	}
	return &Store[T]{
		path:       filepath.Join(dir, fileName),
		collection: collection,
		indent:     indent,
	}, nil
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// ReadAll returns the full decoded collection. A missing file yields an
// empty collection, as does a file whose contents fail to parse.
func (s *Store[T]) ReadAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx)
}

// WriteAll serializes items and overwrites the backing file.
func (s *Store[T]) WriteAll(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(ctx, items)
}

// Mutate runs fn over the full collection and writes back its result, all
// under the store lock, making the whole read-modify-write cycle exclusive.
// fn returns the new collection and whether anything changed; when it
// reports false the write is skipped.
func (s *Store[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked(ctx)
	if err != nil {
		return err
	}
	out, changed, err := fn(items)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.writeLocked(ctx, out)
}

func (s *Store[T]) readLocked(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	observability.StoreReadLatency.WithLabelValues(s.collection).Observe(time.Since(start).Seconds())

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// An unparseable file is treated as an empty collection; the
		// next successful write replaces it.
		observability.StoreCorruptionRecoveries.WithLabelValues(s.collection).Inc()
		observability.Logger.WarnContext(ctx, "discarding unparseable store file",
			slog.String("collection", s.collection),
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T]) writeLocked(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(items, "", "  ")
	} else {
		data, err = json.Marshal(items)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.collection, err)
	}

	start := time.Now()
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	observability.StoreWriteLatency.WithLabelValues(s.collection).Observe(time.Since(start).Seconds())
	return nil
}
