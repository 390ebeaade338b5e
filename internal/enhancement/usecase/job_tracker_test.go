package usecase

import (
	"sync"
	"testing"
)

func TestJobTrackerLifecycle(t *testing.T) {
	tracker := NewJobTracker()
	ids := []string{"a", "b", "c"}

	tracker.Add(ids)
	if tracker.Count() != 3 {
		t.Fatalf("count = %d, want 3", tracker.Count())
	}
	if !tracker.IsActive("b") {
		t.Error("b should be active")
	}
	if !tracker.AnyActive([]string{"x", "c"}) {
		t.Error("AnyActive should see c")
	}

	tracker.Remove("b")
	if tracker.IsActive("b") {
		t.Error("b should be drained")
	}
	if !tracker.AnyActive(ids) {
		t.Error("a and c still active")
	}

	tracker.Remove("a")
	tracker.Remove("c")
	if tracker.AnyActive(ids) || tracker.Count() != 0 {
		t.Error("tracker should be empty")
	}
}

func TestJobTrackerConcurrentAccess(t *testing.T) {
	tracker := NewJobTracker()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			tracker.Add([]string{id})
			tracker.IsActive(id)
			tracker.Remove(id)
		}(string(rune('a' + i)))
	}
	wg.Wait()
	if tracker.Count() != 0 {
		t.Errorf("count = %d after all goroutines drained", tracker.Count())
	}
}
