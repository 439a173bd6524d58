package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/PankajGoutam/User-Api/internal/core/domain"
)

// DefaultTokenTTL is the fixed validity window of issued bearer tokens.
const DefaultTokenTTL = 24 * time.Hour

// sessionClaims wraps the user snapshot the way the tokens carry it on the
// wire: {"user": {...}} plus the registered claims.
type sessionClaims struct {
	User domain.User `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed bearer tokens. A token is
// self-contained proof of identity for its validity window: there is no
// server-side revocation, so role changes or deletion do not invalidate
// tokens already issued.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token embedding a snapshot of user. The password
// hash is excluded by the User JSON contract.
func (t *TokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature, algorithm and expiry, and returns the embedded
// user snapshot. Every failure collapses to domain.ErrInvalidToken.
func (t *TokenManager) Verify(token string) (*domain.User, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return &claims.User, nil
}
