package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckSecret(t *testing.T) {
	hash, err := HashSecret("correct-horse-battery-staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery-staple", hash)

	assert.True(t, CheckSecret(hash, "correct-horse-battery-staple"))
	assert.False(t, CheckSecret(hash, "wrong-secret"))
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-signing-key", time.Hour)

	token, err := issuer.Issue("operator")
	require.NoError(t, err)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", subject)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// NewIssuer replaces a non-positive TTL with the 24h default, so the
	// negative TTL is set on the field directly.
	issuer := NewIssuer("test-signing-key", time.Hour)
	issuer.ttl = -time.Minute

	token, err := issuer.Issue("operator")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSigningKey(t *testing.T) {
	issuer := NewIssuer("key-a", time.Hour)
	other := NewIssuer("key-b", time.Hour)

	token, err := issuer.Issue("operator")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnexpectedSigningMethod(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "operator"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	issuer := NewIssuer("test-signing-key", time.Hour)
	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerDefaultsNonPositiveTTL(t *testing.T) {
	issuer := NewIssuer("test-signing-key", 0)
	assert.Equal(t, 24*time.Hour, issuer.ttl)
}
