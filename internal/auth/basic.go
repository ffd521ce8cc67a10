package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Len() int
	CheckPassword(username, plain string) bool
}

type InMemoryUserStore struct {
	mu sync.RWMutex
	// username -> bcrypt hash
	hashes map[string][]byte
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{hashes: make(map[string][]byte)}
}

func (s *InMemoryUserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hashes)
}

func (s *InMemoryUserStore) AddUserPlain(username, password string) error {
	if username == "" {
		return errors.New("username empty")
	}
	if password == "" {
		return errors.New("password empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.set(username, hash)
	return nil
}

// AddUserHash registers a user with a precomputed bcrypt hash.
func (s *InMemoryUserStore) AddUserHash(username string, bcryptHash []byte) error {
	if username == "" {
		return errors.New("username empty")
	}
	if _, err := bcrypt.Cost(bcryptHash); err != nil {
		return fmt.Errorf("user %s: not a bcrypt hash: %w", username, err)
	}
	s.set(username, bcryptHash)
	return nil
}

func (s *InMemoryUserStore) set(username string, hash []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = hash
}

func (s *InMemoryUserStore) CheckPassword(username, plain string) bool {
	s.mu.RLock()
	hash, ok := s.hashes[username]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}

// BasicAuthMiddleware guards next with HTTP Basic Auth. An empty store
// disables the check, so a household install works without accounts.
// Paths in open are always served.
func BasicAuthMiddleware(store UserStore, realm string, next http.Handler, open ...string) http.Handler {
	if realm == "" {
		realm = "Restricted"
	}
	public := make(map[string]bool, len(open))
	for _, p := range open {
		public[p] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if public[r.URL.Path] || store == nil || store.Len() == 0 {
			next.ServeHTTP(w, r)
			return
		}
		username, password, ok := r.BasicAuth()
		if !ok || !store.CheckPassword(username, password) {
			unauthorized(w, realm)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", "Basic realm=\""+realm+"\"")
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

type contextKey string

const userKey contextKey = "auth.user"

func UsernameFromRequest(r *http.Request) (string, bool) {
	s, ok := r.Context().Value(userKey).(string)
	return s, ok
}
