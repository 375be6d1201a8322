// Package session holds the signed-in user's token and badge counters.
//
// A Session is created explicitly at startup and passed to the components that
// need it; there is no package-level instance. It is safe for concurrent use.
package session

import (
	"sort"
	"sync"
)

// Badge names.
const (
	BadgeApplications  = "applications"
	BadgeNotifications = "notifications"
)

// Session is the authenticated state of one run.
type Session struct {
	mu     sync.RWMutex
	token  string
	badges map[string]int
	closed bool
}

// New creates a session for token. An empty token yields an anonymous session.
func New(token string) *Session {
	return &Session{token: token, badges: map[string]int{}}
}

// Token returns the API token, empty when anonymous or closed.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Increment bumps the named badge and returns its new value. Closed sessions
// stay at zero.
func (s *Session) Increment(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.badges[name]++
	return s.badges[name]
}

// Badge returns the value of the named badge.
func (s *Session) Badge(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges[name]
}

// ResetBadge sets the named badge back to zero.
func (s *Session) ResetBadge(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.badges, name)
}

// BadgeNames returns the names of non-zero badges in sorted order.
func (s *Session) BadgeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.badges))
	for name, n := range s.badges {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Close forgets the token and all badges.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token = ""
	s.badges = map[string]int{}
}
