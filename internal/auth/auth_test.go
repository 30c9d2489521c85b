package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndMatchPassword(t *testing.T) {
	user := &User{Username: "alice"}

	require.NoError(t, user.SetPassword("correct horse battery"))
	assert.NotEmpty(t, user.Password)

	match, err := user.IsPasswordMatch("correct horse battery")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = user.IsPasswordMatch("wrong password")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestTokenRoundTrip(t *testing.T) {
	a := New("test-secret", time.Hour)
	user := &User{ID: 1, Username: "alice", Email: "alice@example.com"}

	token, err := a.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claim, err := a.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claim.Username)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	issuer := New("issuer-secret", time.Hour)
	verifier := New("other-secret", time.Hour)

	token, err := issuer.GenerateToken(&User{Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	a := New("test-secret", -time.Minute)

	token, err := a.GenerateToken(&User{Username: "alice"})
	require.NoError(t, err)

	_, err = a.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	a := New("test-secret", time.Hour)

	_, err := a.Authenticate("not-a-token")
	assert.Error(t, err)
}

func TestAuthenticatedUserContextPlumbing(t *testing.T) {
	a := New("test-secret", time.Hour)
	r := httptest.NewRequest("GET", "/", nil)

	_, err := a.GetAuthenticatedUser(r)
	assert.ErrorIs(t, err, NotAuthenticatedUser)
	assert.False(t, a.IsUserAuthenticated(r))

	user := &User{ID: 7, Username: "alice"}
	r = a.SetAuthenticatedUser(r, user)

	got, err := a.GetAuthenticatedUser(r)
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.True(t, a.IsUserAuthenticated(r))
}
