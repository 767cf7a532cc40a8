package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wolfman30/submissions-dashboard/internal/auth"
	httpmiddleware "github.com/wolfman30/submissions-dashboard/internal/http/middleware"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

type loginService interface {
	Login(password string) (string, time.Time, error)
}

// SessionHandler handles admin login and logout.
type SessionHandler struct {
	sessions loginService
	revoker  auth.Revoker
	logger   *logging.Logger
}

func NewSessionHandler(sessions loginService, revoker auth.Revoker, logger *logging.Logger) *SessionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionHandler{sessions: sessions, revoker: revoker, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	token, expires, err := h.sessions.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrDisabled):
		http.Error(w, "admin login disabled", http.StatusServiceUnavailable)
		return
	case errors.Is(err, auth.ErrBadCredentials):
		h.logger.Warn("admin login rejected", "remote_ip", r.RemoteAddr)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.Error("admin login failed", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	h.logger.Info("admin logged in", "expires_at", expires)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

// Logout handles POST /auth/logout; the current token stops working immediately.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpmiddleware.AdminClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	if h.revoker != nil && claims.ID != "" {
		until := time.Now().Add(time.Hour)
		if claims.ExpiresAt != nil {
			until = claims.ExpiresAt.Time
		}
		if err := h.revoker.Revoke(r.Context(), claims.ID, until); err != nil {
			h.logger.Error("logout revoke failed", "error", err)
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
	}
	h.logger.Info("admin logged out", "token_id", claims.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully!"})
}
