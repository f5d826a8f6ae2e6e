// Package store persists the journal document as a single blob in a
// key-value store. The whole document is read once at startup and written
// in full after every mutation; there are no incremental updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"daygrid/internal/journal"
)

// ErrNotFound is returned by a Blobs backend when the key has never been
// written.
var ErrNotFound = errors.New("store: key not found")

// Blobs is the persistence boundary: one read and one write against a
// key-value blob store.
type Blobs interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}

const documentKey = "journal"

// Store reads and writes the journal document through a Blobs backend.
type Store struct {
	blobs Blobs
}

func New(blobs Blobs) *Store {
	return &Store{blobs: blobs}
}

// Load returns the persisted document. An absent or malformed blob fails
// soft: the error is logged and an empty document is returned, never
// surfaced to the caller.
func (s *Store) Load(ctx context.Context) *journal.Document {
	data, err := s.blobs.Read(ctx, documentKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("load document, starting empty", "err", err)
		}
		return journal.NewDocument()
	}
	doc := &journal.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		slog.Warn("decode document, starting empty", "err", err)
		return journal.NewDocument()
	}
	doc.Normalize()
	return doc
}

// Save serializes the full document and writes it under the fixed key.
func (s *Store) Save(ctx context.Context, doc *journal.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.blobs.Write(ctx, documentKey, data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.blobs.Close()
}
