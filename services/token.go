package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-shop/repository"
)

// Claims is the payload carried by every bearer token: identity in the
// registered subject, plus role and verification state for downstream
// authorization checks.
type Claims struct {
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

// Email returns the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenService issues and validates bearer credentials.
//
// Two validation strengths exist on purpose: Verify covers one-shot
// action links (email verification, password reset) and never consults
// the revocation set; Authenticate is the session check and rejects
// revoked tokens.
type TokenService interface {
	Issue(subject string, ttl time.Duration, role string, verified bool) (string, error)
	Verify(token string) (string, error)
	Authenticate(ctx context.Context, token string) (*Claims, error)
	Revoke(ctx context.Context, token string) error
	RequireRole(claims *Claims, role string) error
}

type tokenService struct {
	secret    []byte
	blacklist repository.BlacklistRepository
}

// NewTokenService returns a TokenService signing with the given HS256
// secret and recording revocations in blacklist.
func NewTokenService(secret []byte, blacklist repository.BlacklistRepository) TokenService {
	return &tokenService{
		secret:    secret,
		blacklist: blacklist,
	}
}

// Issue produces a signed, time-limited credential. Pure computation, no
// store access.
func (s *tokenService) Issue(subject string, ttl time.Duration, role string, verified bool) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Role:     role,
		Verified: verified,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry only and returns the subject.
func (s *tokenService) Verify(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Authenticate is the session-grade check: signature, expiry, and
// absence from the revocation set.
func (s *tokenService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	revoked, err := s.blacklist.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return s.parse(token)
}

// Revoke records the token string in the revocation set, effective
// immediately for all future Authenticate calls. The blacklist entry
// inherits the token's own expiry so the TTL index can prune it; a token
// too mangled to parse still gets revoked with a conservative window.
func (s *tokenService) Revoke(ctx context.Context, token string) error {
	expiresAt := time.Now().UTC().Add(24 * time.Hour)

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithoutClaimsValidation())
	if err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.blacklist.Insert(ctx, token, expiresAt)
}

// RequireRole is a pure predicate check, no I/O.
func (s *tokenService) RequireRole(claims *Claims, role string) error {
	if claims == nil || claims.Role != role {
		return ErrForbidden
	}
	return nil
}

func (s *tokenService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *tokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}
