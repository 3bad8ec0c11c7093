package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"authd/cmd/internal/auth/session"
	"authd/cmd/internal/metrics"
)

// Handler wires the HTTP auth endpoints to the session service.
type Handler struct {
	log *slog.Logger
	cfg Config

	auth    *session.Service
	metrics metrics.Recorder
}

// NewHandler constructs the auth transport handler.
func NewHandler(log *slog.Logger, cfg Config, auth *session.Service, rec metrics.Recorder) (*Handler, error) {
	if auth == nil {
		return nil, errors.New("authapi: nil auth service")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, auth: auth, metrics: rec}, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/is-logged-in", h.handleIsLoggedIn)
	mux.HandleFunc("/health", h.handleHealth)
}

// ---- handlers ----

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	now := time.Now().UTC()
	sess, user, err := h.auth.Login(r.Context(), now, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.recordLogin(false)
			writeFailure(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error("auth.login.fail", "err", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordLogin(true)
	h.setSessionCookie(w, sess.ID, sess.ExpiresAt)
	writeJSON(w, http.StatusOK, loginResponse{
		baseResponse: baseResponse{Success: true, Message: "Login successful"},
		User:         toUserResponse(user),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token := h.tokenFromCookie(r)
	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.log.Error("auth.logout.fail", "err", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, baseResponse{Success: true, Message: "Logout successful"})
}

func (h *Handler) handleIsLoggedIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := time.Now().UTC()
	_, user, err := h.auth.Check(r.Context(), now, h.tokenFromCookie(r))
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			h.recordCheck(false)
			writeJSON(w, http.StatusUnauthorized, loggedInResponse{
				baseResponse: baseResponse{Success: false, Message: "Not logged in"},
				IsLoggedIn:   false,
			})
			return
		}
		h.log.Error("auth.check.fail", "err", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordCheck(true)
	u := toUserResponse(user)
	writeJSON(w, http.StatusOK, loggedInResponse{
		baseResponse: baseResponse{Success: true, Message: "User is logged in"},
		IsLoggedIn:   true,
		User:         &u,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		baseResponse: baseResponse{Success: true, Message: "Auth service is running"},
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) recordLogin(ok bool) {
	if h.metrics == nil {
		return
	}
	if ok {
		h.metrics.RecordLoginSuccess()
	} else {
		h.metrics.RecordLoginFailure()
	}
}

func (h *Handler) recordCheck(authenticated bool) {
	if h.metrics != nil {
		h.metrics.RecordSessionCheck(authenticated)
	}
}
