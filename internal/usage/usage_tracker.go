// Package usage records how many tokens generation requests consume, broken
// down by model, operation and brand. Counters live next to the brand
// collection in the same store backend.
package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"socialpost/internal/logging"
	"socialpost/internal/store"
)

// StorageKey is the backend key usage counters are persisted under.
const StorageKey = "socialpost_usage"

const dataVersion = "1.0"

type (
	trackerKey   struct{}
	operationKey struct{}
	brandKey     struct{}
)

// Tracker manages token usage recording and persistence.
type Tracker struct {
	mu      sync.Mutex
	data    Data
	backend store.Backend
	dirty   bool
	now     func() time.Time
}

// NewTracker creates a tracker backed by backend and loads existing counters.
// Unreadable counters are logged and replaced by empty ones.
func NewTracker(backend store.Backend) *Tracker {
	t := &Tracker{
		backend: backend,
		data:    emptyData(),
		now:     time.Now,
	}
	if err := t.Load(); err != nil {
		logging.StoreWarn("usage: discarding unreadable counters: %v", err)
	}
	return t
}

func emptyData() Data {
	return Data{
		Version: dataVersion,
		Aggregate: AggregatedStats{
			ByModel:     make(map[string]TokenCounts),
			ByOperation: make(map[string]TokenCounts),
			ByBrand:     make(map[string]TokenCounts),
		},
	}
}

// Load reads the counters from the backend.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, err := t.backend.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	data := emptyData()
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse usage: %w", err)
	}
	if data.Aggregate.ByModel == nil {
		data.Aggregate.ByModel = make(map[string]TokenCounts)
	}
	if data.Aggregate.ByOperation == nil {
		data.Aggregate.ByOperation = make(map[string]TokenCounts)
	}
	if data.Aggregate.ByBrand == nil {
		data.Aggregate.ByBrand = make(map[string]TokenCounts)
	}
	t.data = data
	return nil
}

// Save writes the counters if anything was tracked since the last save.
func (t *Tracker) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dirty {
		return nil
	}
	data, err := json.Marshal(t.data)
	if err != nil {
		return err
	}
	if err := t.backend.Set(StorageKey, data); err != nil {
		return fmt.Errorf("failed to save usage: %w", err)
	}
	t.dirty = false
	return nil
}

// Track records one request. The operation and brand come from ctx.
func (t *Tracker) Track(ctx context.Context, model string, input, output int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	operation := "unknown"
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		operation = op
	}

	t.data.Aggregate.Total.Add(input, output)
	addToMap(t.data.Aggregate.ByModel, model, input, output)
	addToMap(t.data.Aggregate.ByOperation, operation, input, output)
	if brand, ok := ctx.Value(brandKey{}).(string); ok && brand != "" {
		addToMap(t.data.Aggregate.ByBrand, brand, input, output)
	}
	t.data.Updated = t.now().UTC()
	t.dirty = true
}

// Stats returns a copy of the aggregated stats.
func (t *Tracker) Stats() AggregatedStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.data.Aggregate
	stats.ByModel = copyTokenCountsMap(stats.ByModel)
	stats.ByOperation = copyTokenCountsMap(stats.ByOperation)
	stats.ByBrand = copyTokenCountsMap(stats.ByBrand)
	return stats
}

// Reset clears all counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = emptyData()
	t.dirty = true
}

func copyTokenCountsMap(src map[string]TokenCounts) map[string]TokenCounts {
	dst := make(map[string]TokenCounts, len(src))
	for key, counts := range src {
		dst[key] = counts
	}
	return dst
}

func addToMap(m map[string]TokenCounts, key string, input, output int) {
	entry := m[key]
	entry.Add(input, output)
	m[key] = entry
}

// Context Helpers

// NewContext returns a new context carrying the tracker.
func NewContext(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// FromContext retrieves the tracker from the context, or nil.
func FromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(trackerKey{}).(*Tracker)
	return t
}

// WithOperation labels requests made with ctx, e.g. "hashtags".
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

// WithBrand attributes requests made with ctx to a brand.
func WithBrand(ctx context.Context, brandID string) context.Context {
	return context.WithValue(ctx, brandKey{}, brandID)
}
