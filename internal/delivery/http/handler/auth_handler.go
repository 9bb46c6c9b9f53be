package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/delivery/http/middleware"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/jwt"
	"ai-calling-agent/pkg/response"
	"ai-calling-agent/pkg/validator"
)

// AuthHandler serves the account endpoints of the agent's web console.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		jwtService:  jwtService,
	}
}

// authStatus maps account errors onto status codes and client messages.
var authStatus = []struct {
	err     error
	status  int
	message string
}{
	{usecase.ErrEmailAlreadyExists, http.StatusConflict, "An account with this email already exists"},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{usecase.ErrInvalidToken, http.StatusUnauthorized, "Token is invalid or expired"},
	{usecase.ErrTokenRevoked, http.StatusUnauthorized, "Token has been revoked"},
	{usecase.ErrUserNotFound, http.StatusNotFound, "User not found"},
}

func writeAuthError(w http.ResponseWriter, err error, fallback string) {
	for _, s := range authStatus {
		if errors.Is(err, s.err) {
			response.Error(w, s.status, s.message, nil)
			return
		}
	}
	writeError(w, err, fallback)
}

// decode reads and validates a JSON body into dst, writing the 400 itself.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

// Signup registers a caller account and returns a signed-in session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.authUsecase.Signup(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to create account")
		return
	}

	response.Success(w, http.StatusCreated, fmt.Sprintf("Welcome, %s", session.FullName), session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to sign in")
		return
	}

	response.Success(w, http.StatusOK, fmt.Sprintf("Welcome back, %s", session.FullName), session)
}

// Logout revokes the presented access token and, when the body names one
// belonging to the same user, its refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, okUser := middleware.GetUserIDFromContext(r.Context())
	tokenID, okToken := middleware.GetTokenIDFromContext(r.Context())
	if !okUser || !okToken {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	refreshTokenID := ""
	if claims, err := h.jwtService.ValidateToken(req.RefreshToken); req.RefreshToken != "" && err == nil && claims.UserID == userID {
		refreshTokenID = claims.TokenID
	}

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID, refreshTokenID); err != nil {
		writeAuthError(w, err, "Failed to sign out")
		return
	}

	response.Success(w, http.StatusOK, "Signed out", nil)
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to refresh token")
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed", tokens)
}

// Me returns the signed-in caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		writeAuthError(w, err, "Failed to load profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved", user)
}
