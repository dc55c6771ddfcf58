// Package token issues and verifies the signed session credentials that gate
// privileged actions. Credentials are stateless HS256 JWTs carrying the subject
// identity and an expiry; there is no revocation list, a credential stays valid
// until its TTL runs out.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed credential lifetime. It is a configuration constant,
// not negotiable per call.
const DefaultTTL = 60 * time.Minute

// ErrRejected is the root of the credential rejection taxonomy. All rejection
// reasons wrap it, so callers that do not care about the specific reason can
// match on ErrRejected alone.
var ErrRejected = errors.New("credential rejected")

// Specific rejection reasons. The HTTP boundary must collapse these into a
// single denial; the distinction exists for logs and tests only.
var (
	ErrMalformed      = fmt.Errorf("%w: malformed", ErrRejected)
	ErrBadSignature   = fmt.Errorf("%w: bad signature", ErrRejected)
	ErrExpired        = fmt.Errorf("%w: expired", ErrRejected)
	ErrUnknownSubject = fmt.Errorf("%w: unknown subject", ErrRejected)
)

// Service issues and verifies session credentials with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTTL overrides the credential lifetime. Intended for tests.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service signing with the given secret.
func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue constructs and signs a credential for the given subject.
// The only side effect is CPU-bound signing.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry, returning the embedded subject.
// Resolving the subject to an existing account is the caller's responsibility;
// use ErrUnknownSubject when that resolution fails.
func (s *Service) Verify(credential string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.Parse(credential, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", classify(err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrMalformed
	}
	return sub, nil
}

// classify maps jwt parse failures onto the rejection taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}
