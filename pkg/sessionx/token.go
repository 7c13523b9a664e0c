package sessionx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed session lifetime. Tokens always expire exactly this long
// after issuance; there is no sliding expiration or silent renewal.
const TTL = 24 * time.Hour

var (
	// ErrNoSecret reports a missing signing secret. This is a configuration
	// error and must abort startup: serving unauthenticated is never an option.
	ErrNoSecret = errors.New("sessionx: signing secret is empty")

	// ErrInvalidToken covers malformed, tampered, and expired tokens alike.
	// Callers must not distinguish between those cases: to a client they are
	// all simply "not authenticated".
	ErrInvalidToken = errors.New("sessionx: invalid token")
)

// claims is the wire shape of a session token.
type claims struct {
	jwt.RegisteredClaims

	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
}

// Codec signs and verifies session tokens with a single server-wide
// symmetric secret (HS256). Sign and Verify are pure functions of their
// input, the secret, and the clock.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec from the configured secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Sign produces a compact signed token for s, expiring TTL from now.
func (c *Codec) Sign(s Session) (string, error) {
	return c.SignAt(s, time.Now().UTC())
}

// SignAt is Sign with an explicit issuance time, for tests and reissue flows.
func (c *Codec) SignAt(s Session, now time.Time) (string, error) {
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		Email:   s.Email,
		Name:    s.Name,
		Picture: s.AvatarURL,
		Role:    s.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sessionx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiration of token and returns the
// embedded Session. All failures come back as ErrInvalidToken; the wrapped
// detail is for logs, never for clients.
func (c *Codec) Verify(token string) (Session, error) {
	return c.VerifyAt(token, time.Now().UTC())
}

// VerifyAt is Verify against an explicit clock.
func (c *Codec) VerifyAt(token string, now time.Time) (Session, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	parsed, err := parser.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}
	if cl.Subject == "" || !cl.Role.Valid() {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:    cl.Subject,
		Email:     cl.Email,
		Name:      cl.Name,
		AvatarURL: cl.Picture,
		Role:      cl.Role,
	}, nil
}
