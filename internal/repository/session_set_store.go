package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/google/uuid"
)

// setNameLayout renders creation instants as "M/D/YYYY h:mm:ss AM".
const setNameLayout = "1/2/2006 3:04:05 PM"

// SessionSetStore owns the canonical collection of saved session sets.
//
// The whole collection is the unit of persistence: every Save and Delete
// rewrites the full list under KeySavedSessionSets. Mutations are serialized
// so one read-modify-write never interleaves with another. A mutation is
// applied to the in-memory collection only after the write succeeds.
type SessionSetStore struct {
	kv    KVStore
	now   func() time.Time
	newID func() string
	loc   *time.Location

	mu     sync.Mutex
	sets   []domain.SavedSessionSet
	loaded bool
}

// StoreOption configures a SessionSetStore.
type StoreOption func(*SessionSetStore)

// WithStoreClock overrides the clock used for createdAt.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *SessionSetStore) {
		s.now = now
	}
}

// WithStoreIDGenerator overrides set ID generation.
func WithStoreIDGenerator(newID func() string) StoreOption {
	return func(s *SessionSetStore) {
		s.newID = newID
	}
}

// WithNameLocation sets the location used when generating set names.
func WithNameLocation(loc *time.Location) StoreOption {
	return func(s *SessionSetStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewSessionSetStore creates a store persisting through kv.
func NewSessionSetStore(kv KVStore, opts ...StoreOption) *SessionSetStore {
	s := &SessionSetStore{
		kv:  kv,
		now: time.Now,
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetName returns the generated name for a set created at t.
func SetName(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return "Session " + t.In(loc).Format(setNameLayout)
}

// Load reads the persisted collection. A missing entry yields an empty list.
//
// Malformed data returns a *StorageReadError and resets the in-memory
// collection to empty, so a later Save replaces the unreadable payload.
// When the provider itself fails the collection stays unloaded and the next
// mutation retries the read.
func (s *SessionSetStore) Load(ctx context.Context) ([]domain.SavedSessionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return []domain.SavedSessionSet{}, err
	}
	return cloneSets(s.sets), nil
}

// Save persists batch as a new set. An empty batch is a no-op returning nil.
func (s *SessionSetStore) Save(ctx context.Context, batch []domain.Session) (*domain.SavedSessionSet, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	createdAt := s.now()
	set := domain.NewSavedSessionSet(s.newID(), SetName(createdAt, s.loc), batch, createdAt)

	next := append(cloneSets(s.sets), set)
	if err := s.write(ctx, next); err != nil {
		return nil, err
	}
	s.sets = next
	return &set, nil
}

// Delete removes the set with the given id. It returns false without
// writing when no such set exists.
func (s *SessionSetStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	next := make([]domain.SavedSessionSet, 0, len(s.sets))
	found := false
	for _, set := range s.sets {
		if set.ID == id && !found {
			found = true
			continue
		}
		next = append(next, set)
	}
	if !found {
		return false, nil
	}

	if err := s.write(ctx, next); err != nil {
		return false, err
	}
	s.sets = next
	return true, nil
}

// Import adds sets whose IDs are not already stored and persists the result
// in one write. The merged collection is ordered by CreatedAt, with stored
// sets first among equal instants. It returns how many sets were added.
func (s *SessionSetStore) Import(ctx context.Context, sets []domain.SavedSessionSet) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(s.sets)+len(sets))
	for _, set := range s.sets {
		known[set.ID] = true
	}
	next := cloneSets(s.sets)
	added := 0
	for _, set := range sets {
		if known[set.ID] {
			continue
		}
		known[set.ID] = true
		next = append(next, cloneSet(set))
		added++
	}
	if added == 0 {
		return 0, nil
	}
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].CreatedAt.Before(next[j].CreatedAt)
	})

	if err := s.write(ctx, next); err != nil {
		return 0, err
	}
	s.sets = next
	return added, nil
}

// Clear persists an empty collection.
func (s *SessionSetStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, nil); err != nil {
		return err
	}
	s.sets = nil
	s.loaded = true
	return nil
}

// Sets returns a copy of the in-memory collection.
func (s *SessionSetStore) Sets() []domain.SavedSessionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSets(s.sets)
}

// Get returns the set with the given id from the in-memory collection.
func (s *SessionSetStore) Get(ctx context.Context, id string) (*domain.SavedSessionSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false, err
	}
	for _, set := range s.sets {
		if set.ID == id {
			found := cloneSet(set)
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (s *SessionSetStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

// load refreshes s.sets from the provider. s.mu must be held.
func (s *SessionSetStore) load(ctx context.Context) error {
	payload, ok, err := s.kv.Get(ctx, KeySavedSessionSets)
	if err != nil {
		return &StorageReadError{Key: KeySavedSessionSets, Err: err}
	}
	if !ok {
		s.sets = nil
		s.loaded = true
		return nil
	}

	sets, err := decodeSets(payload)
	if err != nil {
		s.sets = nil
		s.loaded = true
		return &StorageReadError{Key: KeySavedSessionSets, Err: err}
	}
	s.sets = sets
	s.loaded = true
	return nil
}

func (s *SessionSetStore) write(ctx context.Context, sets []domain.SavedSessionSet) error {
	payload, err := encodeSets(sets)
	if err != nil {
		return &StorageWriteError{Key: KeySavedSessionSets, Err: err}
	}
	if err := s.kv.Set(ctx, KeySavedSessionSets, payload); err != nil {
		return &StorageWriteError{Key: KeySavedSessionSets, Err: err}
	}
	return nil
}

func cloneSets(sets []domain.SavedSessionSet) []domain.SavedSessionSet {
	out := make([]domain.SavedSessionSet, len(sets))
	for i, set := range sets {
		out[i] = cloneSet(set)
	}
	return out
}

func cloneSet(set domain.SavedSessionSet) domain.SavedSessionSet {
	sessions := make([]domain.Session, len(set.Sessions))
	copy(sessions, set.Sessions)
	set.Sessions = sessions
	return set
}
