package authcore

import (
	"fmt"

	"github.com/bbebig/authcore/token"
)

// VerifyToken validates an access token by signature and expiry alone. It
// never touches the store: access tokens are stateless-valid until natural
// expiry; there is no server-side access-token revocation list. Refresh
// tokens presented here are rejected.
//
// Failure kind: ErrUnauthorized.
func (e *Engine) VerifyToken(accessToken string) (*token.Claims, error) {
	if e == nil || e.codec == nil {
		return nil, ErrEngineNotReady
	}
	if accessToken == "" {
		e.metricInc(MetricVerifyFailure)
		return nil, ErrUnauthorized
	}

	claims, err := e.codec.Verify(accessToken, token.KindAccess)
	if err != nil {
		e.metricInc(MetricVerifyFailure)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	e.metricInc(MetricVerifySuccess)
	return claims, nil
}

// RefreshSubject extracts and fully verifies the identity asserted by a
// refresh credential. Transport adapters use it to recover the user ID from
// the refresh cookie before calling [Engine.Refresh]; the refresh call itself
// re-validates against the store.
//
// Failure kind: ErrUnauthorized.
func (e *Engine) RefreshSubject(refreshToken string) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}
	if refreshToken == "" {
		return "", ErrUnauthorized
	}

	claims, err := e.codec.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims.UserID, nil
}
