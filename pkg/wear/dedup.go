package wear

import (
	"sort"
	"sync"
)

// AlertStore holds which part alerts are currently active. A store lives
// for one session: it starts empty and is dropped when the session ends.
type AlertStore struct {
	mu     sync.Mutex
	active map[PartKey]bool
}

func NewAlertStore() *AlertStore {
	return &AlertStore{active: map[PartKey]bool{}}
}

// Active reports whether an alert for key is outstanding.
func (s *AlertStore) Active(key PartKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[key]
}

// ActiveKeys lists outstanding alerts in key order.
func (s *AlertStore) ActiveKeys() []PartKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]PartKey, 0, len(s.active))
	for k, v := range s.active {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Reset forgets every alert.
func (s *AlertStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = map[PartKey]bool{}
}

// Deduplicator decides whether an imminent failure must be notified.
type Deduplicator struct {
	store *AlertStore
}

func NewDeduplicator(store *AlertStore) *Deduplicator {
	if store == nil {
		store = NewAlertStore()
	}
	return &Deduplicator{store: store}
}

// Store returns the backing alert store.
func (d *Deduplicator) Store() *AlertStore {
	return d.store
}

// ShouldNotify returns true at most once per failure episode of key.
// An episode starts at ImminentFailure and ends silently when the part
// is back to Good. Warning and Critical neither send nor reset.
func (d *Deduplicator) ShouldNotify(key PartKey, tier Tier) bool {
	s := d.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch tier {
	case ImminentFailure:
		if s.active[key] {
			return false
		}
		s.active[key] = true
		return true
	case Good:
		if s.active[key] {
			s.active[key] = false
		}
	}
	return false
}
