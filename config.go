package authcore

import (
	"errors"
	"time"
)

// Config defines the Engine's process-wide configuration. It is loaded once at
// startup and treated as immutable afterwards; the signing secret in
// particular is never rotated in-process, so its compromise invalidates every
// outstanding credential (operational hazard, not mitigated here).
type Config struct {
	Token     TokenConfig
	Session   SessionConfig
	Password  PasswordConfig
	RateLimit RateLimitConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig controls signing and lifetimes for both credential kinds.
type TokenConfig struct {
	// Secret is the HS256 signing key shared by access and refresh tokens.
	Secret []byte
	Issuer string
	// AccessTTL is the short access-token lifetime (minutes scale).
	AccessTTL time.Duration
	// RefreshTTL is the refresh-token lifetime and the store TTL of the
	// per-user session slot.
	RefreshTTL time.Duration
	Leeway     time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the Redis slot store.
type SessionConfig struct {
	RedisPrefix string
	// OpTimeout bounds every store round-trip. Store calls may block on
	// network I/O; exceeding the bound surfaces ErrStoreUnavailable.
	OpTimeout time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds Argon2id parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig tunes the fixed-window login throttle.
type RateLimitConfig struct {
	Enabled          bool
	MaxLoginAttempts int
	LoginCooldown    time.Duration
	EnableIPThrottle bool
}

// DefaultConfig returns the production baseline: 15-minute access tokens,
// 7-day refresh tokens, and a 10-attempt login window.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Issuer:     "authcore",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Leeway:     30 * time.Second,
		},
		Session: SessionConfig{
			RedisPrefix: "rt",
			OpTimeout:   3 * time.Second,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		RateLimit: RateLimitConfig{
			Enabled:          true,
			MaxLoginAttempts: 10,
			LoginCooldown:    15 * time.Minute,
			EnableIPThrottle: true,
		},
	}
}

// Validate rejects configurations that would weaken or break the credential
// lifecycle. Called by Build; direct construction should call it too.
func (c Config) Validate() error {
	if len(c.Token.Secret) < 32 {
		return errors.New("token secret must be at least 32 bytes")
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.Token.AccessTTL >= c.Token.RefreshTTL {
		return errors.New("access TTL must be shorter than refresh TTL")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix required")
	}
	if c.Session.OpTimeout <= 0 {
		return errors.New("session op timeout must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.MaxLoginAttempts <= 0 {
			return errors.New("rate limit max attempts must be positive")
		}
		if c.RateLimit.LoginCooldown <= 0 {
			return errors.New("rate limit cooldown must be positive")
		}
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Token.Secret != nil {
		out.Token.Secret = make([]byte, len(cfg.Token.Secret))
		copy(out.Token.Secret, cfg.Token.Secret)
	}
	return out
}
