package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// minSecretLen matches the config-level check; the codec re-validates so it
// cannot be constructed with a weak key even outside the config path.
const minSecretLen = 32

var (
	// ErrTokenInvalid means the token is malformed or its signature does not
	// verify under the current secret.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the decoded, verified content of a session token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenCodec issues and verifies HS256-signed session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewTokenCodec creates a TokenCodec. The secret must be at least 32 bytes;
// startup fails otherwise rather than deferring the problem to first use.
func NewTokenCodec(secret string, ttl time.Duration, clock clockwork.Clock) (*TokenCodec, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes, got %d", minSecretLen, len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

// Issue creates a signed token for the subject with the given role claim.
func (c *TokenCodec) Issue(subject, role string) (string, error) {
	now := c.clock.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// DecodeAndVerify parses a token, verifies its signature and expiry, and
// returns the claims. ErrTokenExpired is returned for tokens that verified
// but have expired; every other failure is ErrTokenInvalid.
func (c *TokenCodec) DecodeAndVerify(token string) (Claims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return Claims{
		Subject:   parsed.Subject,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
