package app

import (
	"sync"

	"report_relay_bot/internal/domain/report"
)

// DraftTracker holds the in-progress report of each user.
// Entries are removed when the report is submitted or cancelled; nothing
// survives a restart.
type DraftTracker struct {
	mu     sync.Mutex
	drafts map[int64]report.Draft
}

func NewDraftTracker() *DraftTracker {
	return &DraftTracker{drafts: make(map[int64]report.Draft)}
}

// Start begins a new draft for userID, replacing any existing one.
func (t *DraftTracker) Start(userID int64, category string) report.Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := report.Draft{Category: category}
	t.drafts[userID] = d
	return d
}

// Get returns the user's draft, if any.
func (t *DraftTracker) Get(userID int64) (report.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.drafts[userID]
	return d, ok
}

// SetObjectCode fills the object code of an existing draft.
func (t *DraftTracker) SetObjectCode(userID int64, code string) (report.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.drafts[userID]
	if !ok {
		return report.Draft{}, false
	}
	d.ObjectCode = &code
	t.drafts[userID] = d
	return d, true
}

// Take removes and returns the user's draft if it is complete. Only one
// caller can take a given draft.
func (t *DraftTracker) Take(userID int64) (report.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.drafts[userID]
	if !ok || !d.HasObjectCode() {
		return report.Draft{}, false
	}
	delete(t.drafts, userID)
	return d, true
}

// Restore puts back a taken draft unless the user has started a new one since.
func (t *DraftTracker) Restore(userID int64, d report.Draft) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.drafts[userID]; ok {
		return false
	}
	t.drafts[userID] = d
	return true
}

// Clear drops the user's draft. It reports whether one existed.
func (t *DraftTracker) Clear(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.drafts[userID]
	delete(t.drafts, userID)
	return ok
}

// Len returns the number of users with an open draft.
func (t *DraftTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.drafts)
}
