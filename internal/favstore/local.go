package favstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

// localBackend persists favorites to a single JSON file for anonymous
// sessions. Write failures are logged and swallowed so a full disk or a
// read-only directory never blocks the in-memory list.
type localBackend struct {
	path string
}

func newLocalBackend(path string) *localBackend {
	return &localBackend{path: path}
}

func (b *localBackend) load(_ context.Context) ([]Record, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt file is treated as empty rather than wedging the store.
		log.Printf("favorites file %s is corrupt, starting empty: %v", b.path, err)
		return nil, nil
	}
	return records, nil
}

func (b *localBackend) add(_ context.Context, rec Record, current []Record) ([]Record, error) {
	for _, existing := range current {
		if existing.Ref == rec.Ref {
			return nil, ErrDuplicate
		}
	}

	next := append(append([]Record(nil), current...), rec)
	b.persist(next)
	return next, nil
}

func (b *localBackend) remove(_ context.Context, ref BookRef, current []Record) ([]Record, error) {
	next := make([]Record, 0, len(current))
	found := false
	for _, existing := range current {
		if existing.Ref == ref {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		return nil, ErrNotFavorite
	}

	b.persist(next)
	return next, nil
}

func (b *localBackend) removeAll(_ context.Context, _ []Record) ([]Record, error) {
	b.persist(nil)
	return nil, nil
}

func (b *localBackend) persist(records []Record) {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Printf("failed to encode favorites: %v", err)
		return
	}

	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("failed to create favorites directory: %v", err)
			return
		}
	}

	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		log.Printf("failed to write favorites file: %v", err)
	}
}
