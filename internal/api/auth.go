package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/unifind/internal/auth"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/schema"
	"github.com/erazemk/unifind/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Store     *store.Memory
	JWTSecret string
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var fe schema.FieldErrors
	if err := schema.Login(req); errors.As(err, &fe) {
		validationError(w, fe)
		return
	}

	user, err := h.Store.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if user == nil {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, *user)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	slog.Info("user logged in", "user", user.Email, "role", user.Role)
	jsonResponse(w, http.StatusOK, model.LoginResult{Token: token, User: *user})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var fe schema.FieldErrors
	if err := schema.Registration(req); errors.As(err, &fe) {
		validationError(w, fe)
		return
	}

	user, err := h.Store.CreateUser(r.Context(), req)
	if errors.Is(err, store.ErrEmailTaken) {
		jsonError(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("user registered", "user", user.Email, "role", user.Role)
	jsonResponse(w, http.StatusCreated, map[string]any{"message": "Account created", "user": user})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	user, err := h.Store.GetUserByEmail(r.Context(), claims.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
