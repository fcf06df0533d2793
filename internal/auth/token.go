package auth

import (
	"errors"
	"time"

	"agrihub_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Typed verification failures. The HTTP layer collapses all of them
// into a single 401 so a caller cannot distinguish which check failed;
// services and tests still see the precise cause.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

const issuer = "agrihub"

// Claims is the decoded access-token payload. Downstream code reads
// identity and role from here and never re-parses the raw token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

// TokenManager signs and verifies access tokens with a process-wide
// secret loaded once at startup. Rotating the secret requires a
// restart and invalidates every previously issued token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured access-token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Generate issues a signed token for the user. Expiry is issued-at
// plus the configured lifetime, so exp is always strictly after iat.
func (tm *TokenManager) Generate(userID string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies the signature and expiry of a token string and
// returns its claims. Verification is stateless: no store lookup is
// performed, so callers needing fresh user state must re-fetch it.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject any non-HMAC method up front so an attacker cannot
		// downgrade the algorithm.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return tm.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
