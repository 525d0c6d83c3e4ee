package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticVerifier struct {
	claims *Claims
	err    error
}

func (v *staticVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	return v.claims, v.err
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestMiddlewarePopulatesContext(t *testing.T) {
	verifier := &staticVerifier{claims: &Claims{UserID: "user-1", Email: "arjun@example.com", Role: "admin"}}

	var gotUser, gotEmail, gotRole string
	handler := Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserID(r.Context())
		gotEmail = Email(r.Context())
		gotRole = Role(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, "arjun@example.com", gotEmail)
	assert.Equal(t, "admin", gotRole)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler := Middleware(&staticVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	handler := Middleware(&staticVerifier{err: ErrInvalidToken})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	reached := false
	protected := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// Plain users are turned away.
	ctx := context.WithValue(context.Background(), roleKey, "user")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)

	// Admins pass through.
	ctx = context.WithValue(context.Background(), roleKey, "admin")
	r = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}
