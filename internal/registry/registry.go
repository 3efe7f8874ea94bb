// Package registry owns the ordered civil-record collection and its
// mirrored persisted copy. All mutations are read-modify-persist:
// the full sequence is written to disk before the call returns.
package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/wargadata-dev/warga-store/internal/format"
	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// Registry is the thread-safe record store. Records are kept
// newest-first; the only lifecycle events are creation and deletion.
type Registry struct {
	mu        sync.RWMutex
	records   []schema.Record
	persister *Persistence
	lastID    int64
}

// NewRegistry initializes a registry from previously loaded records
// (newest-first, as persisted) and a persister. A nil persister keeps
// the registry memory-only, which the tests rely on.
func NewRegistry(initial []schema.Record, p *Persistence) *Registry {
	r := &Registry{records: initial, persister: p}
	if len(initial) > 0 {
		// Newest-first order puts the highest id at the head.
		r.lastID = initial[0].ID
	}
	return r
}

// Add creates a record from raw field strings and inserts it at the
// head of the sequence. Callers must have validated name and
// nationalId already; Add itself never rejects input. The returned
// error is a persistence failure only.
func (r *Registry) Add(name, nationalID, address, amount string) (schema.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	rec := schema.Record{
		ID:         id,
		Name:       strings.TrimSpace(name),
		NationalID: strings.TrimSpace(nationalID),
		Address:    strings.TrimSpace(address),
		Amount:     schema.ParseAmount(amount),
		CreatedAt:  format.Timestamp(now),
	}

	r.records = append([]schema.Record{rec}, r.records...)
	return rec, r.persistLocked()
}

// Delete removes the record with the given id. Deleting an id that is
// not present is a no-op, but the sequence is persisted either way.
func (r *Registry) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0:0]
	for _, rec := range r.records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return r.persistLocked()
}

// DeleteAll clears the sequence entirely. Destructive and not
// undoable; confirming with the user is the caller's concern.
func (r *Registry) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	return r.persistLocked()
}

// List returns the full sequence, newest-first, as a fresh slice.
func (r *Registry) List() ([]schema.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]schema.Record(nil), r.records...), nil
}

// Search filters the sequence. A blank (empty or whitespace-only)
// query returns everything. Otherwise a record matches when its name
// or address contains the query case-insensitively, or its nationalId
// contains the query exactly as typed. The query is not trimmed before
// matching; only the blank check trims. Result order is registry
// order.
func (r *Registry) Search(query string) ([]schema.Record, error) {
	if strings.TrimSpace(query) == "" {
		return r.List()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lower := strings.ToLower(query)
	matched := []schema.Record{}
	for _, rec := range r.records {
		if strings.Contains(strings.ToLower(rec.Name), lower) ||
			strings.Contains(rec.NationalID, query) ||
			strings.Contains(strings.ToLower(rec.Address), lower) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Count returns the number of records in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// persistLocked mirrors the in-memory sequence to disk. Must be called
// with r.mu held.
func (r *Registry) persistLocked() error {
	if r.persister == nil {
		return nil
	}
	return r.persister.Save(append([]schema.Record(nil), r.records...))
}
