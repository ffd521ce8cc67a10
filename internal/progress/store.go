package progress

import "sync"

// Store keeps one State per session in memory. When more than max
// sessions exist, the least recently used one is dropped and onEvict, if
// set, is called with its key after the lock is released.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	max      int
	clock    uint64
	onEvict  func(key string)
}

type session struct {
	state State
	used  uint64
}

func NewStore(max int, onEvict func(key string)) *Store {
	if max <= 0 {
		max = 1000
	}
	return &Store{sessions: make(map[string]*session), max: max, onEvict: onEvict}
}

// Get returns the session's current state; unknown sessions are empty.
func (s *Store) Get(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		s.clock++
		sess.used = s.clock
		return sess.state
	}
	return State{}
}

// Update applies fn to the session's state and stores the result.
func (s *Store) Update(key string, fn func(State) State) State {
	s.mu.Lock()
	var evicted string
	sess, ok := s.sessions[key]
	if !ok {
		if len(s.sessions) >= s.max {
			evicted = s.evictOldest()
		}
		sess = &session{}
		s.sessions[key] = sess
	}
	s.clock++
	sess.used = s.clock
	sess.state = fn(sess.state)
	state := sess.state
	s.mu.Unlock()

	if evicted != "" && s.onEvict != nil {
		s.onEvict(evicted)
	}
	return state
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) evictOldest() string {
	var oldest string
	var lowest uint64
	for k, sess := range s.sessions {
		if oldest == "" || sess.used < lowest {
			oldest, lowest = k, sess.used
		}
	}
	delete(s.sessions, oldest)
	return oldest
}
