package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dkratzer/taskboard-api/internal/api/shared"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
		logger:      logger.With("component", "auth_handler"),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Email: user.Email,
		Token: token,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Email: user.Email,
		Token: token,
	})
}
