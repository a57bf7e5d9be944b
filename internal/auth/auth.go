// Package auth issues and verifies the bearer tokens internal/api checks on
// every request, backed by a single bcrypt-hashed shared secret rather than
// per-user accounts (the status API has one operator-facing credential).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned by Verify for any malformed, expired or
// wrong-signature token.
var ErrInvalidToken = errors.New("invalid or expired token")

// HashSecret bcrypt-hashes a plaintext shared secret for storage in config.
func HashSecret(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// CheckSecret reports whether plain matches the bcrypt hash produced by
// HashSecret.
func CheckSecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Issuer signs and verifies JWTs for the status API using a single
// configured signing key, separate from the bcrypt-hashed shared secret.
type Issuer struct {
	signingKey []byte
	ttl        time.Duration
}

// NewIssuer builds an Issuer. signingKey should be a long random value kept
// only in the server's configuration, not the shared secret itself.
func NewIssuer(signingKey string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue mints a token for subject (typically "operator"), valid for the
// Issuer's configured TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning its subject.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
