package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes the two credential flavors minted by the codec.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrMalformed is returned for tokens that do not parse as JWTs or carry
	// an unusable claim set.
	ErrMalformed = errors.New("token malformed")
	// ErrInvalidSignature is returned when the signature does not verify
	// against the configured secret.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrExpired is returned when exp has elapsed relative to the injected
	// clock (minus leeway).
	ErrExpired = errors.New("token expired")
	// ErrWrongKind is returned when a valid token of the other kind is
	// presented, e.g. a refresh token offered as an access credential.
	ErrWrongKind = errors.New("unexpected token kind")
)

// Config holds the codec's immutable signing parameters.
type Config struct {
	// Secret is the process-wide HS256 key. Loaded once at startup, never
	// mutated; its compromise invalidates all outstanding credentials.
	Secret []byte
	Issuer string
	Leeway time.Duration
	// Now supplies the current time for both minting and verification.
	// Defaults to time.Now.
	Now func() time.Time
}

// Codec mints and verifies signed credentials. Safe for concurrent use.
type Codec struct {
	config Config
}

// Claims is the verified content of a credential.
type Claims struct {
	UserID    string
	Kind      Kind
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type wireClaims struct {
	TokenKind string `json:"knd"`
	jwt.RegisteredClaims
}

// NewCodec validates cfg and returns a ready codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires a signing secret")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Codec{config: cfg}, nil
}

// Mint produces a signed token of the given kind asserting the subject, the
// issue time, and an expiry ttl from now. Side-effect-free apart from reading
// the clock and the random jti.
func (c *Codec) Mint(userID string, kind Kind, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("empty subject")
	}
	if kind != KindAccess && kind != KindRefresh {
		return "", errors.New("unknown token kind")
	}
	if ttl <= 0 {
		return "", errors.New("non-positive ttl")
	}

	now := c.config.Now()
	claims := wireClaims{
		TokenKind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if c.config.Issuer != "" {
		claims.Issuer = c.config.Issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Secret)
}

// Verify checks signature, expiry, and kind against the injected clock and
// returns the asserted claims. Failures map onto exactly one of ErrMalformed,
// ErrInvalidSignature, ErrExpired, or ErrWrongKind.
func (c *Codec) Verify(tokenStr string, want Kind) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.config.Now),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parsed, err := jwt.NewParser(options...).ParseWithClaims(tokenStr, &wireClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*wireClaims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	if Kind(claims.TokenKind) != want {
		return nil, ErrWrongKind
	}

	out := &Claims{
		UserID:    claims.Subject,
		Kind:      Kind(claims.TokenKind),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
