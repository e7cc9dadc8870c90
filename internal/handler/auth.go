package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/auth"
	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/service"
)

// AuthHandler serves signup, login, logout and account endpoints.
//
//   - HandleSignup     POST   /signup
//   - HandleLogin      POST   /login
//   - HandleLogout     POST   /logout         (auth)
//   - HandleMe         GET    /me             (auth)
//   - HandleDeleteUser DELETE /users/{email}  (Bookie)
type AuthHandler struct {
	auth         *service.AuthService
	tokenTTL     time.Duration
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler creates an AuthHandler. secureCookie should be true
// whenever the server sits behind HTTPS.
func NewAuthHandler(svc *service.AuthService, tokenTTL time.Duration, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         svc,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// AuthResponse is returned by signup and login. Token is also set as the
// HttpOnly cookie; it is in the body for clients that use a Bearer header.
type AuthResponse struct {
	User    *model.User    `json:"user"`
	Session *model.Session `json:"session"`
	Token   string         `json:"token"`
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var f form.SignupForm
	if err := decode(w, r, &f); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.auth.Signup(r.Context(), f)
	if err != nil {
		h.logger.Info("signup rejected", zap.String("email", f.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, AuthResponse{User: res.User, Session: res.Session, Token: res.Token})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var f form.LoginForm
	if err := decode(w, r, &f); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.auth.Login(r.Context(), f)
	if err != nil {
		h.logger.Info("login rejected", zap.String("email", f.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, res.Token)
	writeJSON(w, http.StatusOK, AuthResponse{User: res.User, Session: res.Session, Token: res.Token})
}

// HandleLogout closes the caller's session server-side, so the JWT stops
// resolving even if a copy survives, and deletes the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	if err := h.auth.Logout(r.Context(), id.SessionToken); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleDeleteUser removes an account by email.
func (h *AuthHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "malformed email", Field: "email"})
		return
	}

	user, err := h.auth.DeleteUser(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// setTokenCookie stores the JWT in an HttpOnly cookie so page scripts
// cannot read it.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
