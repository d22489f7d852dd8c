package favstore

import (
	"context"
	"sync"
)

// backend is the persistence strategy behind the store. Mutations return the
// full list the store should hold afterwards.
type backend interface {
	load(ctx context.Context) ([]Record, error)
	add(ctx context.Context, rec Record, current []Record) ([]Record, error)
	remove(ctx context.Context, ref BookRef, current []Record) ([]Record, error)
	removeAll(ctx context.Context, current []Record) ([]Record, error)
}

// Listener receives the full favorites list after every change.
type Listener func(records []Record)

// Store holds a user's favorites and notifies subscribers on change. It
// starts in anonymous mode, backed by a local file, and can be switched to
// server persistence once the user signs in. All methods are safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	records   []Record
	backend   backend
	localPath string
	authed    bool
	listeners map[int]Listener
	nextID    int
}

// New creates a store in anonymous mode with favorites persisted at
// localPath. Call Load to populate it.
func New(localPath string) *Store {
	return &Store{
		backend:   newLocalBackend(localPath),
		localPath: localPath,
		listeners: make(map[int]Listener),
	}
}

// Load populates the store from its active backend.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	records, err := s.backend.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.records = records
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetAuthenticated switches the store to server persistence and replaces
// the list with the server's. Local favorites are not merged.
func (s *Store) SetAuthenticated(ctx context.Context, client *Client) error {
	return s.switchBackend(ctx, newServerBackend(client), true)
}

// SetAnonymous switches the store back to the local file, replacing the
// list with whatever the file holds.
func (s *Store) SetAnonymous(ctx context.Context) error {
	return s.switchBackend(ctx, newLocalBackend(s.localPath), false)
}

func (s *Store) switchBackend(ctx context.Context, b backend, authed bool) error {
	records, err := b.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.backend = b
	s.authed = authed
	s.records = records
	s.mu.Unlock()

	s.notify()
	return nil
}

// Authenticated reports whether the store is in server-backed mode.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// Records returns a snapshot of the current favorites.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Contains reports whether the given ref is favorited.
func (s *Store) Contains(ref BookRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.Ref == ref {
			return true
		}
	}
	return false
}

// Add favorites a book. Adding a book that is already favorited returns
// ErrDuplicate and leaves the list unchanged.
func (s *Store) Add(ctx context.Context, rec Record) error {
	return s.mutate(func() ([]Record, error) {
		return s.backend.add(ctx, rec, s.records)
	})
}

// Remove unfavorites the book with the given ref. Removing a ref that is
// not favorited returns ErrNotFavorite.
func (s *Store) Remove(ctx context.Context, ref BookRef) error {
	return s.mutate(func() ([]Record, error) {
		return s.backend.remove(ctx, ref, s.records)
	})
}

// Clear removes every favorite.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(func() ([]Record, error) {
		return s.backend.removeAll(ctx, s.records)
	})
}

func (s *Store) mutate(op func() ([]Record, error)) error {
	s.mu.Lock()
	records, err := op()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.records = records
	s.mu.Unlock()

	s.notify()
	return nil
}

// Subscribe registers a listener called with the full list after every
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify calls each listener with a snapshot, outside the store lock so
// listeners can call back into the store.
func (s *Store) notify() {
	s.mu.Lock()
	snapshot := append([]Record(nil), s.records...)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
