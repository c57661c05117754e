// Package auth issues and verifies bearer tokens, hashes passwords and
// guards routes that require an authenticated user.
//
// Tokens are HS256 JWTs carrying the user id in the "id" claim. Several
// signing keys may be configured at once (JWT_KEYS); new tokens are signed
// with the active key and the key id travels in the "kid" header so tokens
// signed by a retired-but-still-listed key keep verifying during rotation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of issued tokens when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

const defaultKID = "default"

// ErrInvalidToken is returned for malformed, expired or badly signed tokens.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the JWT payload.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates JWTs.
type TokenManager struct {
	keys      map[string][]byte
	activeKID string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenManager returns a TokenManager with a single signing secret.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	return NewTokenManagerFromKeys(map[string]string{defaultKID: secret}, defaultKID, ttl)
}

// NewTokenManagerFromKeys returns a TokenManager that signs with keys[activeKID]
// and verifies with whichever key the token's kid header names.
func NewTokenManagerFromKeys(keys map[string]string, activeKID string, ttl time.Duration) (*TokenManager, error) {
	if len(keys) == 0 {
		return nil, errors.New("auth: at least one signing key is required")
	}
	if _, ok := keys[activeKID]; !ok {
		return nil, fmt.Errorf("auth: active key %q not in key set", activeKID)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &TokenManager{keys: make(map[string][]byte, len(keys)), activeKID: activeKID, ttl: ttl, now: time.Now}
	for kid, secret := range keys {
		if secret == "" {
			return nil, fmt.Errorf("auth: empty secret for key %q", kid)
		}
		m.keys[kid] = []byte(secret)
	}
	return m, nil
}

// Issue returns a signed token for userID and its expiry.
func (m *TokenManager) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		ID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = m.activeKID

	signed, err := token.SignedString(m.keys[m.activeKID])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses tokenString and returns the user id it was issued for.
// Every failure is reported as ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: bad id claim", ErrInvalidToken)
	}
	return id, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		kid = m.activeKID
	}
	key, ok := m.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}
