package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/bbebig/authcore"
)

// envelope is the uniform response body. Result is omitted on failures and on
// bodyless successes.
type envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// http.StatusResetContent forbids a body; everything else carries the envelope.
	if status == http.StatusResetContent {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, result any) {
	writeJSON(w, status, envelope{Code: "ok", Message: message, Result: result})
}

// writeError is the single mapping point from Engine failures to the wire.
// Every failure goes through authcore.KindOf; handlers never pick statuses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := wireFor(authcore.KindOf(err))

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "code", code, "err", err)
	} else {
		h.logger.Warn("request rejected", "path", r.URL.Path, "code", code)
	}

	writeJSON(w, status, envelope{Code: code, Message: message})
}

func wireFor(kind authcore.Kind) (status int, code, message string) {
	switch kind {
	case authcore.KindBadRequest:
		return http.StatusBadRequest, "bad_request", "missing or invalid fields"
	case authcore.KindNotFound:
		return http.StatusNotFound, "not_found", "no account matches that email"
	case authcore.KindPasswordMismatch:
		return http.StatusUnauthorized, "password_mismatch", "password does not match"
	case authcore.KindDuplicateEmail:
		return http.StatusBadRequest, "duplicate_email", "email already registered"
	case authcore.KindDuplicateNickname:
		return http.StatusBadRequest, "duplicate_nickname", "nickname already taken"
	case authcore.KindUnauthorized:
		return http.StatusUnauthorized, "unauthorized", "invalid or expired credentials"
	case authcore.KindTooManyRequests:
		return http.StatusTooManyRequests, "too_many_requests", "too many login attempts, retry later"
	case authcore.KindStoreUnavailable:
		return http.StatusInternalServerError, "store_unavailable", "session store unavailable"
	default:
		return http.StatusInternalServerError, "server_error", "internal server error"
	}
}
