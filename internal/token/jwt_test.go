package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/jobboard/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:               uuid.New(),
		Email:            "seeker@example.com",
		Username:         "seeker",
		Role:             model.RoleJobSeeker,
		FirstLogin:       true,
		OnboardingStatus: model.OnboardingInProgress,
	}
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := testUser()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u.ID, got)
}

func TestJWT_WrongSecret(t *testing.T) {
	access, err := NewJWT("secret", time.Hour).GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	access, err := j.GenerateAccessToken(testUser())
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.NewString(), TokenType: "refresh"})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(s)
	require.Error(t, err)
}

func TestDecoder_Decode(t *testing.T) {
	u := testUser()
	access, err := NewJWT("secret", time.Hour).GenerateAccessToken(u)
	require.NoError(t, err)

	claims, err := NewDecoder().Decode(access)
	require.NoError(t, err)

	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, model.RoleJobSeeker, claims.Role)
	assert.True(t, claims.FirstLogin)
	assert.Equal(t, model.OnboardingInProgress, claims.OnboardingStatus)
	require.NotNil(t, claims.ExpiresAt)
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(*claims.ExpiresAt))
}

func TestDecoder_Malformed(t *testing.T) {
	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "admin"}).SignedString([]byte("x"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "validtoken-admin"},
		{name: "bad base64", token: "a.b.c"},
		{name: "missing principal id", token: noID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().Decode(tt.token)
			require.ErrorIs(t, err, model.ErrMalformedToken)
		})
	}
}

func TestDecoder_SubjectFallback(t *testing.T) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Role:             "administrator",
	}).SignedString([]byte("x"))
	require.NoError(t, err)

	claims, err := NewDecoder().Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Nil(t, claims.ExpiresAt)
	assert.False(t, claims.Expired(time.Now()))
}
