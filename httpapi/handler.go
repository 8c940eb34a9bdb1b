package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbebig/authcore"
)

// Config tunes the adapter. Zero values are filled by NewHandler.
type Config struct {
	Cookie CookieConfig
	// RetryBackoff is the pause before the single retry of an operation that
	// failed with a store-unavailable kind.
	RetryBackoff time.Duration
}

// Handler serves the auth routes over a wired Engine.
type Handler struct {
	engine       *authcore.Engine
	logger       *slog.Logger
	cookies      CookieConfig
	retryBackoff time.Duration
}

// NewHandler wires the adapter. A nil logger discards.
func NewHandler(engine *authcore.Engine, logger *slog.Logger, cfg Config) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Cookie.TTL <= 0 {
		cfg.Cookie.TTL = 7 * 24 * time.Hour
	}
	if cfg.Cookie.SameSite == 0 {
		cfg.Cookie.SameSite = http.SameSiteLaxMode
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	return &Handler{
		engine:       engine,
		logger:       logger,
		cookies:      cfg.Cookie,
		retryBackoff: cfg.RetryBackoff,
	}
}

// Routes returns the full route table. Web and mobile variants of login and
// refresh differ only in where the refresh credential travels; they share the
// same Engine calls.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/login/mobile", h.handleLoginMobile)
	mux.HandleFunc("POST /auth/refresh", h.handleRefresh)
	mux.HandleFunc("POST /auth/refresh/mobile", h.handleRefreshMobile)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /auth/verify", h.handleVerify)
	mux.HandleFunc("GET /auth/status", h.handleStatus)
	mux.HandleFunc("GET /health", h.handleHealth)
	return mux
}

// retry runs fn, and once more after a short backoff if the failure kind is
// store-unavailable. Auth rejections are never retried.
func (h *Handler) retry(fn func() error) error {
	err := fn()
	if authcore.KindOf(err) != authcore.KindStoreUnavailable {
		return err
	}
	h.logger.Warn("store unavailable, retrying once", "backoff", h.retryBackoff)
	time.Sleep(h.retryBackoff)
	return fn()
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Nickname  string `json:"nickname"`
	Birthdate string `json:"birthdate"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, authcore.ErrBadRequest)
		return
	}

	userID, err := h.engine.Register(r.Context(), authcore.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Nickname:  req.Nickname,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "registered", map[string]string{"userId": userID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) (*authcore.LoginResult, bool) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, authcore.ErrBadRequest)
		return nil, false
	}

	ctx := authcore.WithClientIP(r.Context(), clientIP(r))
	var res *authcore.LoginResult
	err := h.retry(func() error {
		var inner error
		res, inner = h.engine.Login(ctx, req.Email, req.Password)
		return inner
	})
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return res, true
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	res, ok := h.login(w, r)
	if !ok {
		return
	}
	h.setRefreshCookie(w, res.RefreshToken)
	writeSuccess(w, http.StatusOK, "login successful", map[string]string{
		"userId":      res.UserID,
		"accessToken": res.AccessToken,
	})
}

func (h *Handler) handleLoginMobile(w http.ResponseWriter, r *http.Request) {
	res, ok := h.login(w, r)
	if !ok {
		return
	}
	writeSuccess(w, http.StatusOK, "login successful", map[string]string{
		"userId":       res.UserID,
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
	})
}

// rotate recovers the caller identity from the presented refresh credential,
// then rotates. The store-side exact match inside Refresh is what actually
// decides validity; the subject extraction only keys the slot lookup.
func (h *Handler) rotate(w http.ResponseWriter, r *http.Request, presented string) (*authcore.TokenPair, bool) {
	userID, err := h.engine.RefreshSubject(presented)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}

	var pair *authcore.TokenPair
	err = h.retry(func() error {
		var inner error
		pair, inner = h.engine.Refresh(r.Context(), userID, presented)
		return inner
	})
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return pair, true
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	presented := refreshFromCookie(r)
	if presented == "" {
		h.writeError(w, r, authcore.ErrUnauthorized)
		return
	}
	pair, ok := h.rotate(w, r, presented)
	if !ok {
		return
	}
	h.setRefreshCookie(w, pair.RefreshToken)
	writeSuccess(w, http.StatusOK, "token refreshed", map[string]string{
		"accessToken": pair.AccessToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRefreshMobile(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		h.writeError(w, r, authcore.ErrUnauthorized)
		return
	}
	pair, ok := h.rotate(w, r, req.RefreshToken)
	if !ok {
		return
	}
	writeSuccess(w, http.StatusOK, "token refreshed", map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, err := h.engine.VerifyToken(bearerToken(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	presented := refreshFromCookie(r)
	if presented == "" {
		var req refreshRequest
		if decodeBody(r, &req) == nil {
			presented = req.RefreshToken
		}
	}

	err = h.retry(func() error {
		return h.engine.Logout(r.Context(), claims.UserID, presented)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusResetContent, envelope{})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims, err := h.engine.VerifyToken(bearerToken(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "token valid", map[string]any{
		"userId":    claims.UserID,
		"expiresAt": claims.ExpiresAt.Unix(),
	})
}

// handleStatus is the optimistic probe: it reports whether the request looks
// logged in without touching the store, so it never fails on infrastructure.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if claims, err := h.engine.VerifyToken(bearerToken(r)); err == nil {
		userID = claims.UserID
	}
	loggedIn := h.engine.LoginStatus(userID, refreshFromCookie(r) != "")
	writeSuccess(w, http.StatusOK, "status", map[string]bool{"loggedIn": loggedIn})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}
