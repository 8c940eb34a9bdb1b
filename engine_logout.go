package authcore

import (
	"context"
	"fmt"
)

// Logout drops whatever session exists for the user. It requires an
// established caller identity and a presented refresh credential (defense
// against logging out without any session), but does not require the
// presented value to match the stored one. This is a slot drop, not a
// token-specific revoke.
//
// Idempotent: deleting an absent slot succeeds, so calling Logout twice in a
// row both succeed.
//
// Failure kinds: ErrUnauthorized, ErrStoreUnavailable.
func (e *Engine) Logout(ctx context.Context, userID, presented string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	if userID == "" || presented == "" {
		return ErrUnauthorized
	}

	if err := e.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metricInc(MetricLogout)
	return nil
}
