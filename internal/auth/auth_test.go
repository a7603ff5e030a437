package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	Init(&Config{Secret: "test-secret", Issuer: "filemanager", TokenTTL: time.Hour})

	token, err := IssueToken("8c2f0e9a-1f5d-4a8b-9c3e-2d7f6b5a4e1c")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	r := httptest.NewRequest("GET", "/file/list", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	guid, err := VerifyToken(r)
	require.NoError(t, err)
	assert.Equal(t, "8c2f0e9a-1f5d-4a8b-9c3e-2d7f6b5a4e1c", guid)
}

func TestVerifyTokenNoHeader(t *testing.T) {
	Init(&Config{Secret: "test-secret", Issuer: "filemanager", TokenTTL: time.Hour})

	r := httptest.NewRequest("GET", "/file/list", nil)

	_, err := VerifyToken(r)
	assert.Error(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	Init(&Config{Secret: "first-secret", Issuer: "filemanager", TokenTTL: time.Hour})
	token, err := IssueToken("user-guid")
	require.NoError(t, err)

	Init(&Config{Secret: "other-secret", Issuer: "filemanager", TokenTTL: time.Hour})

	r := httptest.NewRequest("GET", "/file/list", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	_, err = VerifyToken(r)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	Init(&Config{Secret: "test-secret", Issuer: "filemanager", TokenTTL: -time.Minute})
	token, err := IssueToken("user-guid")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/file/list", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	_, err = VerifyToken(r)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
