package httpapi

import (
	"net/http"
	"time"
)

// refreshCookieName is fixed on the wire; browser clients hold exactly one
// refresh credential under it.
const refreshCookieName = "refresh_token"

// CookieConfig controls the attributes of the refresh cookie that vary by
// deployment. Path, HttpOnly and the name itself do not vary.
type CookieConfig struct {
	// Domain scopes the cookie; empty means host-only.
	Domain string
	// Secure should only be false for local development over plain HTTP.
	Secure bool
	// SameSite defaults to Lax when unset.
	SameSite http.SameSite
	// TTL is the cookie lifetime. It should equal the refresh token lifetime
	// so the cookie and the credential inside it expire together.
	TTL time.Duration
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  time.Now().Add(h.cookies.TTL),
		MaxAge:   int(h.cookies.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
}

// refreshFromCookie returns the refresh credential carried by the request, or
// "" when the cookie is absent.
func refreshFromCookie(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
