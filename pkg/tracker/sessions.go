package tracker

import (
	"strings"
	"sync"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

// SessionStores keeps one alert store per session. A session's alerts are
// forgotten when it is dropped.
type SessionStores struct {
	mu     sync.Mutex
	stores map[string]*wear.AlertStore
}

func NewSessionStores() *SessionStores {
	return &SessionStores{stores: map[string]*wear.AlertStore{}}
}

// Get returns the store of session, creating an empty one on first use.
// A blank session maps to the default session.
func (s *SessionStores) Get(session string) *wear.AlertStore {
	session = normalizeSession(session)

	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[session]
	if !ok {
		store = wear.NewAlertStore()
		s.stores[session] = store
	}
	return store
}

// Drop ends a session and reports whether it existed.
func (s *SessionStores) Drop(session string) bool {
	session = normalizeSession(session)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.stores[session]
	delete(s.stores, session)
	return ok
}

func (s *SessionStores) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

func normalizeSession(session string) string {
	if session = strings.TrimSpace(session); session == "" {
		return common.DefaultSessionID
	}
	return session
}
