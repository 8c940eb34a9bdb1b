package authcore

import (
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bbebig/authcore/internal/rate"
	"github.com/bbebig/authcore/password"
	"github.com/bbebig/authcore/session"
	"github.com/bbebig/authcore/token"
)

// Engine orchestrates the session-credential lifecycle: login, refresh
// rotation, logout, verification, and registration. It holds no per-request
// state; concurrency correctness reduces to the store's per-key consistency
// plus the single-flight refresh group.
type Engine struct {
	config  Config
	codec   *token.Codec
	store   session.Store
	users   UserStore
	hasher  *password.Argon2
	limiter *rate.Limiter
	metrics *Metrics
	now     func() time.Time

	refreshGroup singleflight.Group
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// mintPair issues one access/refresh generation for the user.
func (e *Engine) mintPair(userID string) (TokenPair, error) {
	access, err := e.codec.Mint(userID, token.KindAccess, e.config.Token.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := e.codec.Mint(userID, token.KindRefresh, e.config.Token.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
