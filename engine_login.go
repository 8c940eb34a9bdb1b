package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/bbebig/authcore/internal/rate"
)

// Login authenticates the email/password pair, mints an access/refresh token
// pair, and writes the refresh token into the store keyed by user ID with a
// TTL equal to the refresh lifetime. One store write per successful call.
//
// On a store write failure the whole operation fails: the caller never holds
// a refresh token the store did not record.
//
// Failure kinds: ErrBadRequest (missing fields), ErrUserNotFound,
// ErrPasswordMismatch, ErrTooManyRequests, ErrStoreUnavailable.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" || plaintext == "" {
		return nil, ErrBadRequest
	}

	ip := clientIPFromContext(ctx)

	if e.limiter != nil {
		if err := e.limiter.CheckLogin(ctx, email, ip); err != nil {
			return nil, e.mapThrottleError(err)
		}
	}

	user, err := e.users.FindByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("%w: user lookup: %v", ErrServerError, err)
	}
	if user == nil {
		e.recordLoginFailure(ctx, email, ip)
		return nil, ErrUserNotFound
	}

	ok, err := e.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil || !ok {
		e.recordLoginFailure(ctx, email, ip)
		return nil, ErrPasswordMismatch
	}
	plaintext = ""

	pair, err := e.mintPair(user.UserID)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("%w: mint: %v", ErrServerError, err)
	}

	if err := e.store.Put(ctx, user.UserID, pair.RefreshToken, e.config.Token.RefreshTTL); err != nil {
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if e.limiter != nil {
		// Best-effort: a stale counter only shortens the next window.
		_ = e.limiter.ResetLogin(ctx, email, ip)
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)

	return &LoginResult{UserID: user.UserID, TokenPair: pair}, nil
}

// Register creates an account after checking email and nickname uniqueness.
// The password is hashed before it reaches the user store. No credentials are
// issued; the client logs in afterwards.
//
// Failure kinds: ErrBadRequest, ErrDuplicateEmail, ErrDuplicateNickname.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (string, error) {
	if e == nil || e.users == nil {
		return "", ErrEngineNotReady
	}
	if input.Email == "" || input.Password == "" || input.Nickname == "" {
		return "", ErrBadRequest
	}

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	input.Password = ""

	existing, err := e.users.FindByEmail(ctx, input.Email)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return "", fmt.Errorf("%w: email lookup: %v", ErrServerError, err)
	}
	if existing != nil {
		e.metricInc(MetricRegisterFailure)
		return "", ErrDuplicateEmail
	}

	existing, err = e.users.FindByNickname(ctx, input.Nickname)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return "", fmt.Errorf("%w: nickname lookup: %v", ErrServerError, err)
	}
	if existing != nil {
		e.metricInc(MetricRegisterFailure)
		return "", ErrDuplicateNickname
	}

	userID, err := e.users.Create(ctx, CreateUserInput{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Nickname:     input.Nickname,
		Birthdate:    input.Birthdate,
	})
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return "", fmt.Errorf("%w: create user: %v", ErrServerError, err)
	}

	e.metricInc(MetricRegisterSuccess)
	return userID, nil
}

// LoginStatus is the non-failing optimistic probe: it reports false whenever
// caller identity or the refresh credential is absent and never consults the
// store, so a true result does not prove the session is still valid.
func (e *Engine) LoginStatus(userID string, refreshPresent bool) bool {
	return userID != "" && refreshPresent
}

func (e *Engine) recordLoginFailure(ctx context.Context, email, ip string) {
	e.metricInc(MetricLoginFailure)
	if e.limiter == nil {
		return
	}
	// The increment itself can trip the limit; that surfaces on the next call.
	_ = e.limiter.IncrementLogin(ctx, email, ip)
}

func (e *Engine) mapThrottleError(err error) error {
	e.metricInc(MetricLoginRateLimited)
	if errors.Is(err, rate.ErrRateLimited) {
		return ErrTooManyRequests
	}
	return fmt.Errorf("%w: throttle: %v", ErrStoreUnavailable, err)
}
