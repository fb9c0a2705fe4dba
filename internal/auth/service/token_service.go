package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// MinSigningKeySize is the smallest accepted HMAC key in bytes.
const MinSigningKeySize = 32

// Claims are the JWT claims carried by an access token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService with HS256 JWTs.
type tokenService struct {
	signingKey []byte
	lifetime   time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService. The key must be at least 32 bytes and
// the lifetime positive.
func NewTokenService(signingKey []byte, lifetime time.Duration) (TokenService, error) {
	return NewTokenServiceWithClock(signingKey, lifetime, time.Now)
}

// NewTokenServiceWithClock is NewTokenService with an injectable clock.
func NewTokenServiceWithClock(
	signingKey []byte,
	lifetime time.Duration,
	now func() time.Time,
) (TokenService, error) {
	if len(signingKey) < MinSigningKeySize {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token signing key must be at least 32 bytes")
	}
	if lifetime <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token lifetime must be positive")
	}

	key := make([]byte, len(signingKey))
	copy(key, signingKey)

	return &tokenService{signingKey: key, lifetime: lifetime, now: now}, nil
}

func (s *tokenService) Issue(subject string, roles []string) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Roles: append([]string{}, roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

func (s *tokenService) Verify(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

func (s *tokenService) Subject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *tokenService) Roles(token string) ([]string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	return claims.Roles, nil
}

// parse validates signature, algorithm and expiration and returns the claims.
func (s *tokenService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, authDomain.ErrMalformedToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Join(authDomain.ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, authDomain.ErrMalformedToken
	}
	return claims, nil
}
