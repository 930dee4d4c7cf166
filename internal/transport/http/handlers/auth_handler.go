package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/service"
	"github.com/fosel/chirp/internal/transport/http/middleware"
	"github.com/fosel/chirp/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateRegister(input.Email, input.Nickname, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusForbidden, "EMAIL_TAKEN", "Email address already in use")
		} else {
			h.log.Error("register failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		} else {
			h.log.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Me returns the full projection for the logged-in user, or null for
// anonymous requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if actor == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	full, err := h.authService.Me(r.Context(), actor)
	if err != nil {
		h.log.Error("loading current user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, full)
}

// Profile returns another user's projection with collections reduced to
// counts.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	profile, err := h.authService.Profile(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User does not exist")
		} else {
			h.log.Error("loading profile failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateNickname(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var input struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateNickname(input.Nickname); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.authService.UpdateNickname(r.Context(), actor, input.Nickname); err != nil {
		h.log.Error("updating nickname failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"nickname": input.Nickname})
}
