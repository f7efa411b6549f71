// Package store holds the brand collection in memory and mirrors it to a
// key/value Backend after every mutation.
//
// The collection is copy-on-write: every mutation builds a new slice (and new
// post slices for the brand it touches), so a snapshot returned by Brands is
// never modified afterwards and can be compared by Version for change detection.
// Persistence is best effort. Read and write failures are logged on the store
// category and never returned; the in-memory state stays authoritative.
package store

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"socialpost/internal/logging"
	"socialpost/internal/types"
)

// StorageKey is the single key the brand collection is persisted under.
const StorageKey = "socialpost_ai_brands"

// ErrInvalidBrand is returned by AddBrand when the name or description is blank.
var ErrInvalidBrand = errors.New("brand name and description are required")

// Store is the brand/post state container.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	brands  []types.Brand
	version uint64

	newID func() string
}

// New creates an empty store over backend. Call Load to hydrate it.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		brands:  []types.Brand{},
		newID:   uuid.NewString,
	}
}

// Open creates a store over backend and loads the persisted collection.
func Open(backend Backend) *Store {
	s := New(backend)
	s.Load()
	return s
}

// Load replaces the in-memory collection with the persisted one, filling in
// fields that older records lack. An absent or unreadable payload leaves the
// collection empty. It returns the number of brands loaded.
func (s *Store) Load() int {
	brands := s.read()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = brands
	s.version++
	return len(brands)
}

// Reload re-reads the backend, e.g. after another process wrote to it.
func (s *Store) Reload() int {
	n := s.Load()
	logging.StoreDebug("reloaded %d brands", n)
	return n
}

func (s *Store) read() []types.Brand {
	timer := logging.StartTimer(logging.CategoryStore, "load")
	defer timer.Stop()

	data, err := s.backend.Get(StorageKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.StoreDebug("no persisted brands under %s", StorageKey)
		} else {
			logging.StoreError("failed to read brands: %v", err)
		}
		return []types.Brand{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		logging.StoreError("failed to parse brands from storage: %v", err)
		return []types.Brand{}
	}

	// Records decode one at a time so a single bad one cannot drop the rest.
	brands := make([]types.Brand, 0, len(records))
	migrated := 0
	for i, raw := range records {
		var b types.Brand
		if err := json.Unmarshal(raw, &b); err != nil {
			logging.StoreWarn("skipping unreadable brand record %d: %v", i, err)
			continue
		}
		if migrate(&b) {
			migrated++
		}
		brands = append(brands, b)
	}
	if migrated > 0 {
		logging.Store("filled defaults on %d stored brands", migrated)
	}
	logging.StoreDebug("loaded %d brands", len(brands))
	return brands
}

// migrate fills fields that records written by older versions may lack and
// reports whether anything changed. BrandIdentity is a value type, so a missing
// identity already decodes as the empty profile.
func migrate(b *types.Brand) bool {
	changed := false
	if !b.Dialect.Valid() {
		b.Dialect = types.DefaultDialect
		changed = true
	}
	if b.Posts == nil {
		b.Posts = []types.Post{}
		changed = true
	}
	return changed
}

// save persists a snapshot. Writes happen under s.mu so they land in order.
func (s *Store) save(brands []types.Brand) {
	data, err := json.Marshal(brands)
	if err != nil {
		logging.StoreError("failed to encode brands: %v", err)
		return
	}
	if err := s.backend.Set(StorageKey, data); err != nil {
		logging.StoreError("failed to save brands to storage: %v", err)
		return
	}
	logging.StoreDebug("saved %d brands (%d bytes)", len(brands), len(data))
}

// commit installs next as the current collection and persists it.
func (s *Store) commit(next []types.Brand) {
	s.brands = next
	s.version++
	s.save(next)
}

// Brands returns the current collection. The slice and the brands in it must be
// treated as read-only.
func (s *Store) Brands() []types.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brands
}

// Brand looks up a brand by id.
func (s *Store) Brand(id string) (types.Brand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brands {
		if b.ID == id {
			return b, true
		}
	}
	return types.Brand{}, false
}

// Version increases on every mutation and every load.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// AddBrand appends a new brand with an empty identity and no posts. An invalid
// dialect falls back to the default.
func (s *Store) AddBrand(name, description string, dialect types.Dialect) (types.Brand, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return types.Brand{}, ErrInvalidBrand
	}
	if !dialect.Valid() {
		dialect = types.DefaultDialect
	}

	brand := types.Brand{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Dialect:     dialect,
		Posts:       []types.Post{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]types.Brand, 0, len(s.brands)+1)
	next = append(next, s.brands...)
	next = append(next, brand)
	s.commit(next)

	logging.Store("added brand %q (%s)", name, brand.ID)
	return brand, nil
}

// DeleteBrand removes a brand and its posts. It reports whether the brand existed.
func (s *Store) DeleteBrand(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		if b.ID != id {
			next = append(next, b)
		}
	}
	if len(next) == len(s.brands) {
		return false
	}
	s.commit(next)
	logging.Store("deleted brand %s", id)
	return true
}

// AppendPosts puts posts in front of the brand's history, keeping their order.
func (s *Store) AppendPosts(brandID string, posts []types.Post) bool {
	return s.updateBrand(brandID, func(b *types.Brand) bool {
		merged := make([]types.Post, 0, len(posts)+len(b.Posts))
		merged = append(merged, posts...)
		merged = append(merged, b.Posts...)
		b.Posts = merged
		return true
	})
}

// UpdatePost merges the populated fields of u into one post. Unknown brand or
// post ids are a no-op.
func (s *Store) UpdatePost(brandID, postID string, u types.PostUpdate) bool {
	if u.IsZero() {
		return false
	}
	return s.updateBrand(brandID, func(b *types.Brand) bool {
		for i, p := range b.Posts {
			if p.ID != postID {
				continue
			}
			posts := make([]types.Post, len(b.Posts))
			copy(posts, b.Posts)
			posts[i] = u.Apply(p)
			b.Posts = posts
			return true
		}
		return false
	})
}

// SaveIdentity replaces the brand's identity profile.
func (s *Store) SaveIdentity(brandID string, identity types.BrandIdentity) bool {
	identity = identity.Normalized()
	return s.updateBrand(brandID, func(b *types.Brand) bool {
		b.Identity = identity
		return true
	})
}

// updateBrand applies fn to a copy of the brand and commits a new collection if
// fn reports a change.
func (s *Store) updateBrand(id string, fn func(*types.Brand) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.brands {
		if b.ID != id {
			continue
		}
		updated := b
		if !fn(&updated) {
			return false
		}
		next := make([]types.Brand, len(s.brands))
		copy(next, s.brands)
		next[i] = updated
		s.commit(next)
		return true
	}
	logging.StoreDebug("brand %s not found", id)
	return false
}
