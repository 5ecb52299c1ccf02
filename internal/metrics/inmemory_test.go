package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	m := NewInMemory()

	m.IncUserCacheHit()
	m.IncUserCacheHit()
	m.IncUserCacheMiss()
	m.IncUserCreated()
	m.IncUserUpdated()
	m.IncUserDeleted()
	m.ObserveLookupDuration(5 * time.Millisecond)
	m.ObserveLookupDuration(10 * time.Millisecond)

	s := m.Snapshot()

	if s.UserCacheHits != 2 {
		t.Errorf("UserCacheHits = %d, want 2", s.UserCacheHits)
	}
	if s.UserCacheMisses != 1 {
		t.Errorf("UserCacheMisses = %d, want 1", s.UserCacheMisses)
	}
	if s.UsersCreated != 1 || s.UsersUpdated != 1 || s.UsersDeleted != 1 {
		t.Errorf("mutation counters = %d/%d/%d, want 1/1/1", s.UsersCreated, s.UsersUpdated, s.UsersDeleted)
	}
	if s.LookupDurationCount != 2 {
		t.Errorf("LookupDurationCount = %d, want 2", s.LookupDurationCount)
	}
	if want := (15 * time.Millisecond).Nanoseconds(); s.LookupDurationTotalNs != want {
		t.Errorf("LookupDurationTotalNs = %d, want %d", s.LookupDurationTotalNs, want)
	}
}

func TestInMemoryRecorder_ConcurrentIncrements(t *testing.T) {
	m := NewInMemory()

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.IncUserCacheHit()
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().UserCacheHits; got != workers*perWorker {
		t.Errorf("UserCacheHits = %d, want %d", got, workers*perWorker)
	}
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	var _ Recorder = NewNoop()
	var _ Recorder = NewInMemory()

	// Must not panic.
	n := NewNoop()
	n.IncUserCacheHit()
	n.IncUserCacheMiss()
	n.ObserveLookupDuration(time.Millisecond)
	n.IncUserCreated()
	n.IncUserUpdated()
	n.IncUserDeleted()
}
