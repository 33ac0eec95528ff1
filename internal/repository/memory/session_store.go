package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pdf-explainer-be/internal/entity"
)

// SessionStore owns every live conversation and the active-session pointer.
// All state is process-memory only and is lost on restart. Each method
// applies one mutation atomically under the store lock, so callers never
// observe partial state.
type SessionStore struct {
	mu        sync.Mutex
	cache     *cache.Cache // session id -> *entity.ChatSession
	order     []uuid.UUID  // insertion order, most-recent-first
	active    uuid.UUID
	hasActive bool
}

func NewSessionStore() *SessionStore {
	// Sessions never expire; they are only removed by explicit deletion.
	c := cache.New(cache.NoExpiration, 0)
	return &SessionStore{
		cache: c,
	}
}

// Create registers the session at the front of the ordering and makes it
// the active one.
func (s *SessionStore) Create(session *entity.ChatSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(session.Id.String(), session, cache.NoExpiration)
	s.order = append([]uuid.UUID{session.Id}, s.order...)
	s.active = session.Id
	s.hasActive = true
}

// Select sets the active session. Unknown ids are a no-op and leave the
// current selection untouched.
func (s *SessionStore) Select(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(id.String()); !found {
		return false
	}
	s.active = id
	s.hasActive = true
	return true
}

// Delete removes the session. When the deleted session was active the next
// remaining one in order takes its place; with nothing left the active
// pointer is cleared, signaling the upload flow.
func (s *SessionStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(id.String()); !found {
		return false
	}
	s.cache.Delete(id.String())

	idx := -1
	for i, existing := range s.order {
		if existing == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.order = append(s.order[:idx], s.order[idx+1:]...)
	}

	if s.hasActive && s.active == id {
		switch {
		case len(s.order) == 0:
			s.hasActive = false
			s.active = uuid.UUID{}
		case idx < len(s.order):
			s.active = s.order[idx]
		default:
			s.active = s.order[len(s.order)-1]
		}
	}
	return true
}

// AppendMessage adds to the session's history no matter which session is
// active, which is what lets an exchange result land in a session the user
// has navigated away from.
func (s *SessionStore) AppendMessage(id uuid.UUID, msg entity.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.get(id)
	if !found {
		return false
	}
	session.Messages = append(session.Messages, msg)
	return true
}

// BeginExchange marks the session pending. It fails when the session is
// missing or already has an outstanding exchange; the winner holds the only
// pending slot until EndExchange.
func (s *SessionStore) BeginExchange(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.get(id)
	if !found || session.Pending {
		return false
	}
	session.Pending = true
	return true
}

func (s *SessionStore) EndExchange(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, found := s.get(id); found {
		session.Pending = false
	}
}

// Get returns a snapshot of the session; the messages slice is copied so
// readers never alias store-owned state.
func (s *SessionStore) Get(id uuid.UUID) (*entity.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.get(id)
	if !found {
		return nil, false
	}
	return snapshot(session), true
}

// List returns session snapshots most-recent-first.
func (s *SessionStore) List() []*entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.ChatSession, 0, len(s.order))
	for _, id := range s.order {
		if session, found := s.get(id); found {
			out = append(out, snapshot(session))
		}
	}
	return out
}

func (s *SessionStore) ActiveID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.hasActive
}

// get must be called with the lock held.
func (s *SessionStore) get(id uuid.UUID) (*entity.ChatSession, bool) {
	if x, found := s.cache.Get(id.String()); found {
		return x.(*entity.ChatSession), true
	}
	return nil, false
}

func snapshot(session *entity.ChatSession) *entity.ChatSession {
	copied := *session
	copied.Messages = make([]entity.ChatMessage, len(session.Messages))
	copy(copied.Messages, session.Messages)
	return &copied
}
