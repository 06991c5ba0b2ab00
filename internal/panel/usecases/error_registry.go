package usecases

import (
	"patient-panel/internal/panel/domain"
	"slices"
	"sync"
)

// ErrorRegistry keeps the validation failures that block each patient's submission.
// A patient has an entry only while at least one of its fields is invalid.
type ErrorRegistry struct {
	mu      sync.RWMutex
	entries map[domain.ID]domain.ErrorEntry
}

func NewErrorRegistry() *ErrorRegistry {
	return &ErrorRegistry{
		entries: make(map[domain.ID]domain.ErrorEntry),
	}
}

// Set stores the entry built from errs, or removes the patient's entry when errs is empty.
func (r *ErrorRegistry) Set(id domain.ID, errs []domain.ValidationError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := domain.NewErrorEntry(errs)
	if !ok {
		delete(r.entries, id)
		return
	}

	r.entries[id] = entry
}

func (r *ErrorRegistry) Has(id domain.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

func (r *ErrorRegistry) Get(id domain.ID) (domain.ErrorEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return domain.ErrorEntry{}, false
	}
	return cloneEntry(entry), true
}

func (r *ErrorRegistry) Snapshot() map[domain.ID]domain.ErrorEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[domain.ID]domain.ErrorEntry, len(r.entries))
	for id, entry := range r.entries {
		result[id] = cloneEntry(entry)
	}
	return result
}

func (r *ErrorRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[domain.ID]domain.ErrorEntry)
}

func cloneEntry(entry domain.ErrorEntry) domain.ErrorEntry {
	return domain.ErrorEntry{
		Title:      entry.Title,
		Messages:   slices.Clone(entry.Messages),
		FieldNames: slices.Clone(entry.FieldNames),
	}
}
