package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWT {
	return NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	refresh, jti, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	gotUser, gotJTI, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, gotUser)
	require.Equal(t, jti, gotJTI)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", 0, 0)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, ErrExpired)
}

func TestJWT_TamperedSignature(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	tampered := []byte(access)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = j.ParseAccessToken(string(tampered))
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestJWT_WrongSecret(t *testing.T) {
	u := uuid.New()

	access, err := newTestJWT().GenerateAccessToken(u)
	require.NoError(t, err)

	other := NewJWT("another secret", 15*time.Minute, time.Hour)
	_, err = other.ParseAccessToken(access)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestJWT_Malformed(t *testing.T) {
	j := newTestJWT()

	_, err := j.ParseAccessToken("not a token at all")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = j.ParseAccessToken("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)

	_, _, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, ErrTypeMismatch)

	refresh, _, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, ErrTypeMismatch)
}
