package usecase

import "sync"

// JobTracker is the process-local set of article ids with background
// enhancement in flight. It is not a source of truth: the persisted record's
// processing status is authoritative, and losing the set on restart is fine
// because a re-run is idempotent. The set only prevents status polling from
// reporting completion while database writes lag job teardown.
type JobTracker struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewJobTracker() *JobTracker {
	return &JobTracker{active: make(map[string]struct{})}
}

// Add marks article ids as in flight.
func (t *JobTracker) Add(articleIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range articleIDs {
		t.active[id] = struct{}{}
	}
}

// Remove drains one article id as its work finishes or errors.
func (t *JobTracker) Remove(articleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, articleID)
}

// IsActive reports whether one article id is in flight.
func (t *JobTracker) IsActive(articleID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[articleID]
	return ok
}

// AnyActive reports whether any of the given ids is in flight.
func (t *JobTracker) AnyActive(articleIDs []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range articleIDs {
		if _, ok := t.active[id]; ok {
			return true
		}
	}
	return false
}

// Count returns the number of in-flight ids.
func (t *JobTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}
