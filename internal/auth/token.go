package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/student-portal/internal/domain"
)

// Token verification failures, one per rejection cause.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// TokenCodec issues and verifies stateless HS256 access tokens.
// The secret is read-only after construction; rotating it invalidates
// every previously issued token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the process-wide secret and default TTL.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &TokenCodec{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload.
type Claims struct {
	SubjectID int         `json:"uid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the identity using the default TTL.
func (tc *TokenCodec) Issue(identity domain.Identity) (string, time.Time, error) {
	return tc.IssueFor(identity, tc.ttl)
}

// IssueFor signs a token for the identity with an explicit TTL.
func (tc *TokenCodec) IssueFor(identity domain.Identity, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		SubjectID: identity.SubjectID,
		Role:      identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks integrity and expiry and returns the embedded identity.
func (tc *TokenCodec) Verify(tokenStr string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Identity{}, ErrInvalidSignature
		default:
			return domain.Identity{}, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, ErrMalformed
	}
	if claims.SubjectID <= 0 || !claims.Role.Valid() {
		return domain.Identity{}, ErrMalformed
	}
	return domain.Identity{SubjectID: claims.SubjectID, Role: claims.Role}, nil
}
