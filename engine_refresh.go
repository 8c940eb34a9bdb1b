package authcore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/bbebig/authcore/session"
	"github.com/bbebig/authcore/token"
)

// Refresh rotates the user's credentials: the presented refresh token is
// checked against the stored slot by exact value, verified cryptographically,
// and on success replaced by a freshly minted pair. The presented token can
// never succeed again after a successful call; the overwrite supersedes it.
//
// A mismatch between presented and stored values revokes the whole slot,
// forcing re-login. A stale-but-unexpired token replayed after rotation
// therefore fails here even though its signature still verifies.
//
// Concurrent calls presenting the same (userID, token) are coalesced into one
// rotation through a single-flight group; every coalesced caller receives the
// same new pair. This serializes the two-tabs race within one process; the
// store itself offers no compare-and-swap, so cross-process races still
// resolve last-writer-wins.
//
// Failure kinds: ErrUnauthorized, ErrStoreUnavailable.
func (e *Engine) Refresh(ctx context.Context, userID, presented string) (*TokenPair, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	if userID == "" || presented == "" {
		e.metricInc(MetricRefreshFailure)
		return nil, ErrUnauthorized
	}

	key := userID + "\x00" + presented
	result, err, _ := e.refreshGroup.Do(key, func() (interface{}, error) {
		return e.rotate(ctx, userID, presented)
	})
	if err != nil {
		return nil, err
	}

	pair, ok := result.(*TokenPair)
	if !ok {
		return nil, ErrServerError
	}
	return pair, nil
}

func (e *Engine) rotate(ctx context.Context, userID, presented string) (*TokenPair, error) {
	stored, err := e.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			e.metricInc(MetricRefreshFailure)
			return nil, ErrUnauthorized
		}
		e.metricInc(MetricRefreshFailure)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) != 1 {
		// Replay of a superseded token. Revoke the slot so the token that
		// superseded it stops working too; the user must log in again.
		e.metricInc(MetricRefreshReuseDetected)
		e.revokeSlot(ctx, userID)
		return nil, ErrUnauthorized
	}

	claims, err := e.codec.Verify(presented, token.KindRefresh)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.UserID != userID {
		e.metricInc(MetricRefreshFailure)
		e.revokeSlot(ctx, userID)
		return nil, ErrUnauthorized
	}

	pair, err := e.mintPair(userID)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		return nil, fmt.Errorf("%w: mint: %v", ErrServerError, err)
	}

	// Rotation step: unconditional overwrite. The old value is now
	// superseded and fails the exact-match check forever after. On write
	// failure the whole refresh fails: no token leaves unbacked by a slot.
	if err := e.store.Put(ctx, userID, pair.RefreshToken, e.config.Token.RefreshTTL); err != nil {
		e.metricInc(MetricRefreshFailure)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metricInc(MetricRefreshSuccess)
	return &pair, nil
}

func (e *Engine) revokeSlot(ctx context.Context, userID string) {
	// Best-effort defense-in-depth; the reject already stands on its own.
	if err := e.store.Delete(ctx, userID); err == nil {
		e.metricInc(MetricSessionRevoked)
	}
}
