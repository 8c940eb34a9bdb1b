package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/bbebig/authcore"
	"github.com/bbebig/authcore/token"
)

type claimsKey struct{}

// Guard is middleware for routes that require a valid access token. It
// verifies the bearer token statelessly and injects the claims into the
// request context; handlers read them back with ClaimsFromContext.
//
// The guard never consults the session store. A rotated-away session keeps
// its access tokens valid until natural expiry.
func Guard(engine *authcore.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := engine.VerifyToken(bearerToken(r))
			if err != nil {
				status, code, message := wireFor(authcore.KindOf(err))
				writeJSON(w, status, envelope{Code: code, Message: message})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the access-token claims stored by Guard, or nil
// when the request did not pass through it.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*token.Claims)
	return claims
}

// bearerToken extracts the credential from an "Authorization: Bearer ..."
// header, "" when absent or malformed.
func bearerToken(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(raw) <= len(prefix) || !strings.EqualFold(raw[:len(prefix)], prefix) {
		return ""
	}
	return raw[len(prefix):]
}

// clientIP resolves the caller address for login throttling. The first
// X-Forwarded-For hop wins when present; otherwise the socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
