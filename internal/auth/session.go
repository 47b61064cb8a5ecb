package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeForm is the only scope issued: it unlocks the form and its run API.
const ScopeForm = "form"

// Claims defines the payload of a local session token.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// SessionManager issues and verifies HMAC signed tokens for the local form.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager constructs a manager with the given secret and token lifetime.
func NewSessionManager(secret []byte, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{secret: secret, ttl: ttl}
}

// NewRandomSessionManager builds a manager keyed with 32 fresh random bytes.
func NewRandomSessionManager(ttl time.Duration) (*SessionManager, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	return NewSessionManager(secret, ttl), nil
}

// GenerateToken creates a form-scoped token for the provided subject.
func (m *SessionManager) GenerateToken(subject string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret must not be empty")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "leadstorm",
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: ScopeForm,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies the token signature, expiry and scope.
func (m *SessionManager) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer("leadstorm"))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Scope != ScopeForm {
		return nil, errors.New("token scope not allowed")
	}

	return claims, nil
}
