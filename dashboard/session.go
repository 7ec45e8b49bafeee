/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
)

const DefaultSessionTTL = time.Hour

// Loader fetches the full match collection.
type Loader interface {
	Load(ctx context.Context) ([]rugby.Match, error)
}

// Session is one browser's view of the data. The frame is fetched once and
// reused for every later interaction until the session is reloaded.
type Session struct {
	ID string

	mu       sync.Mutex
	frame    *analytics.Frame
	loadedAt time.Time
	lastSeen time.Time
}

// Frame returns the session's frame, fetching it on first use or when
// reload is set. A failed fetch leaves the session's previous frame, if any,
// in place; a session that never loaded fetches again on its next
// interaction.
func (s *Session) Frame(ctx context.Context, store *SessionStore,
	reload bool) (*analytics.Frame, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame != nil && !reload {
		return s.frame, nil
	}
	if reload {
		ctx = rugby.WithFreshFetch(ctx)
	}

	matches, err := store.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	frame, err := analytics.NewFrame(matches, store.cls)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	s.frame = frame
	s.loadedAt = store.now()
	log.Printf("dashboard.session: %v loaded %v matches", s.ID, frame.Len())

	return s.frame, nil
}

func (s *Session) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// SessionStore holds the live sessions keyed by id.
type SessionStore struct {
	loader Loader
	cls    rugby.Classifier
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(loader Loader, cls rugby.Classifier,
	ttl time.Duration) *SessionStore {

	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		loader:   loader,
		cls:      cls,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session with id, or a new one when id is unknown or
// has been idle longer than the store's ttl. Expired sessions are evicted.
func (ss *SessionStore) Get(id string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := ss.evictLocked()
	s, ok := ss.sessions[id]
	if !ok {
		s = &Session{ID: uuid.NewString()}
		ss.sessions[s.ID] = s
	}
	s.lastSeen = now

	return s
}

// Lookup returns the live session with id without creating one.
func (ss *SessionStore) Lookup(id string) (*Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := ss.evictLocked()
	s, ok := ss.sessions[id]
	if ok {
		s.lastSeen = now
	}

	return s, ok
}

func (ss *SessionStore) evictLocked() time.Time {
	now := ss.now()
	for k, s := range ss.sessions {
		if now.Sub(s.lastSeen) > ss.ttl {
			delete(ss.sessions, k)
		}
	}
	return now
}

// Len returns the number of live sessions.
func (ss *SessionStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}
