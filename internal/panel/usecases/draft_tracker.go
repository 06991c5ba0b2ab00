package usecases

import (
	"patient-panel/internal/panel/domain"
	"sync"
)

// DraftTracker holds the outstanding draft edits reported by the rendering layer,
// at most one per patient.
type DraftTracker struct {
	mu     sync.RWMutex
	drafts map[domain.ID]domain.Draft
	order  []domain.ID
}

func NewDraftTracker() *DraftTracker {
	return &DraftTracker{
		drafts: make(map[domain.ID]domain.Draft),
	}
}

// Replace swaps the whole outstanding set for drafts. When a patient appears more than
// once the last draft wins. It returns the patients whose draft is new or changed.
func (t *DraftTracker) Replace(drafts []domain.Draft) []domain.ID {
	next := make(map[domain.ID]domain.Draft, len(drafts))
	order := make([]domain.ID, 0, len(drafts))
	for _, d := range drafts {
		if _, seen := next[d.PatientID]; !seen {
			order = append(order, d.PatientID)
		}
		next[d.PatientID] = d
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	changed := make([]domain.ID, 0, len(order))
	for _, id := range order {
		previous, ok := t.drafts[id]
		if !ok || !previous.Changes.Equal(next[id].Changes) {
			changed = append(changed, id)
		}
	}

	t.drafts = next
	t.order = order

	return changed
}

func (t *DraftTracker) Get(id domain.ID) (domain.Draft, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	draft, ok := t.drafts[id]
	return draft, ok
}

// Consume removes draft from the set unless a newer edit replaced it meanwhile.
// It reports whether the draft was removed.
func (t *DraftTracker) Consume(draft domain.Draft) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.drafts[draft.PatientID]
	if !ok || !current.Changes.Equal(draft.Changes) {
		return false
	}

	t.removeLocked(draft.PatientID)
	return true
}

func (t *DraftTracker) Remove(id domain.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.removeLocked(id)
}

func (t *DraftTracker) All() []domain.Draft {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]domain.Draft, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.drafts[id])
	}
	return result
}

func (t *DraftTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drafts = make(map[domain.ID]domain.Draft)
	t.order = nil
}

func (t *DraftTracker) removeLocked(id domain.ID) {
	if _, ok := t.drafts[id]; !ok {
		return
	}
	delete(t.drafts, id)
	for i, current := range t.order {
		if current == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}
