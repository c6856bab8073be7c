package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live attempt sessions, keyed by attempt id. Submitted
// attempts stay readable for the retention window so the runner can still
// fetch the outcome, then get evicted.
type Store struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*Session
	retention time.Duration
}

// NewStore creates an empty session store.
func NewStore(retention time.Duration) *Store {
	return &Store{
		sessions:  make(map[uuid.UUID]*Session),
		retention: retention,
	}
}

// Put registers a session.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns the session for an attempt id, or nil.
func (st *Store) Get(id uuid.UUID) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Delete removes a session immediately.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// ScheduleEviction drops the session after the retention window. Called
// once per attempt, right after submission.
func (st *Store) ScheduleEviction(id uuid.UUID) {
	time.AfterFunc(st.retention, func() {
		st.Delete(id)
	})
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
