package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func whoami() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, _ := UsernameFromRequest(r)
		_, _ = w.Write([]byte("user=" + name))
	})
}

func serve(h http.Handler, path, user, pass string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestEmptyStoreDisablesAuth(t *testing.T) {
	h := BasicAuthMiddleware(NewInMemoryUserStore(), "cleaning", whoami())
	rr := serve(h, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user=", rr.Body.String())
}

func TestBasicAuth(t *testing.T) {
	store := NewInMemoryUserStore()
	require.NoError(t, store.AddUserPlain("alice", "secret"))
	h := BasicAuthMiddleware(store, "cleaning", whoami(), "/healthz")

	rr := serve(h, "/", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `Basic realm="cleaning"`, rr.Header().Get("WWW-Authenticate"))

	rr = serve(h, "/", "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(h, "/", "mallory", "secret")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(h, "/", "alice", "secret")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user=alice", rr.Body.String())

	rr = serve(h, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAddUserHash(t *testing.T) {
	store := NewInMemoryUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, store.AddUserHash("bob", hash))
	assert.True(t, store.CheckPassword("bob", "pw"))
	assert.Equal(t, 1, store.Len())

	assert.Error(t, store.AddUserHash("eve", []byte("plaintext")))
	assert.Error(t, store.AddUserHash("", hash))
	assert.Error(t, store.AddUserPlain("carol", ""))
}
