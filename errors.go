package authcore

import "errors"

var (
	// ErrBadRequest is returned when a required field is missing or empty.
	ErrBadRequest = errors.New("bad request")
	// ErrUserNotFound is returned by Login when no account matches the email.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch is returned by Login when the password does not verify.
	//
	// Login deliberately keeps ErrUserNotFound and ErrPasswordMismatch distinct
	// on the wire, matching the deployed behavior. Collapsing them into a single
	// rejection would close an account-enumeration channel and is tracked as a
	// hardening candidate.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicateNickname is returned by Register when the nickname is taken.
	ErrDuplicateNickname = errors.New("duplicate nickname")
	// ErrUnauthorized covers every missing, invalid, expired, or mismatched
	// credential. Refresh and VerifyToken never report a finer-grained cause.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyRequests is surfaced when the login throttle rejects the caller.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrStoreUnavailable marks an infrastructure failure talking to the
	// refresh-token store. Retryable; never a security decision.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrServerError is the catch-all for failures with no better kind.
	ErrServerError = errors.New("server error")
	// ErrEngineNotReady is returned when the Engine is used before Build wired
	// its mandatory dependencies.
	ErrEngineNotReady = errors.New("engine not ready")
)

// Kind is the tagged classification of an Engine failure. Transports match a
// Kind exhaustively in one place instead of chaining errors.Is checks per
// sentinel.
type Kind int

const (
	KindNone Kind = iota
	KindBadRequest
	KindNotFound
	KindPasswordMismatch
	KindDuplicateEmail
	KindDuplicateNickname
	KindUnauthorized
	KindTooManyRequests
	KindStoreUnavailable
	KindServerError
)

// KindOf maps an Engine error to its Kind. Unrecognized non-nil errors
// classify as KindServerError so no failure path escapes the taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrPasswordMismatch):
		return KindPasswordMismatch
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateEmail
	case errors.Is(err, ErrDuplicateNickname):
		return KindDuplicateNickname
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrTooManyRequests):
		return KindTooManyRequests
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindServerError
	}
}
