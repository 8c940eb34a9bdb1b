package authcore

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bbebig/authcore/internal/rate"
	"github.com/bbebig/authcore/password"
	"github.com/bbebig/authcore/session"
	"github.com/bbebig/authcore/token"
)

// Builder assembles an [Engine]. Dependencies are injected up front so tests
// can substitute deterministic keys, fake clocks, and store doubles.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  session.Store
	users  UserStore
	now    func() time.Time

	built bool
}

// New starts a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's config. The config is cloned; later
// mutation of cfg does not reach the Engine.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the Redis client backing the refresh-token store and the
// login throttle.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore overrides the refresh-token store. Intended for test doubles;
// when set it takes precedence over the Redis-backed store.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithUserStore supplies the external account collaborator.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithClock overrides the time source for token minting and verification.
// Defaults to time.Now.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration, wires the codec, store, hasher, and
// throttle, and returns the ready Engine. A builder can build only once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.users == nil {
		return nil, errors.New("user store required")
	}
	if b.redis == nil && b.store == nil {
		return nil, errors.New("redis client required")
	}
	if b.redis == nil && cfg.RateLimit.Enabled {
		return nil, errors.New("rate limiting requires redis client")
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	codec, err := token.NewCodec(token.Config{
		Secret: cfg.Token.Secret,
		Issuer: cfg.Token.Issuer,
		Leeway: cfg.Token.Leeway,
		Now:    now,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix, cfg.Session.OpTimeout)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle: cfg.RateLimit.EnableIPThrottle,
			MaxLoginAttempts: cfg.RateLimit.MaxLoginAttempts,
			LoginCooldown:    cfg.RateLimit.LoginCooldown,
		})
	}

	b.built = true

	return &Engine{
		config:  cfg,
		codec:   codec,
		store:   store,
		users:   b.users,
		hasher:  hasher,
		limiter: limiter,
		metrics: newMetrics(),
		now:     now,
	}, nil
}
