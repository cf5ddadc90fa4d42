package handlers

import (
	"log"
	"net/http"

	"github.com/ruralpay/banksim/internal/middleware"
	"github.com/ruralpay/banksim/internal/services"
)

type AuthHandler struct {
	directory *services.DirectoryService
	sessions  *services.SessionService
	validator *services.ValidationHelper
}

func NewAuthHandler(directory *services.DirectoryService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{
		directory: directory,
		sessions:  sessions,
		validator: services.NewValidationHelper(),
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type MpinLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Mpin     string `json:"mpin" validate:"required"`
}

// AuthResponse is returned by both login flows.
type AuthResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register handles user registration
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} services.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Registration attempt from IP: %s", r.RemoteAddr)

	var req RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	msg, err := h.directory.Register(req.Username, req.Email, req.Password)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": msg, "username": req.Username})
}

// Login handles password authentication
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	msg, err := h.directory.LoginWithPassword(req.Username, req.Password)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}
	h.issueSession(w, req.Username, msg)
}

// LoginWithMpin handles MPIN authentication
// @Summary Login user with MPIN
// @Tags auth
// @Accept json
// @Produce json
// @Param request body MpinLoginRequest true "MPIN login request"
// @Success 200 {object} AuthResponse
// @Router /auth/login/mpin [post]
func (h *AuthHandler) LoginWithMpin(w http.ResponseWriter, r *http.Request) {
	var req MpinLoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	msg, err := h.directory.LoginWithMpin(req.Username, req.Mpin)
	if err != nil {
		sendServiceError(w, "AUTH", err)
		return
	}
	h.issueSession(w, req.Username, msg)
}

// Logout blacklists the presented token until it expires.
// @Summary Logout user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.BearerToken(r); ok {
		if err := h.sessions.Revoke(r.Context(), token); err != nil {
			log.Printf("[AUTH] Logout could not revoke token: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, username, msg string) {
	token, err := h.sessions.Issue(username)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for %s: %v", username, err)
		services.SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Login successful for %s", username)
	writeJSON(w, http.StatusOK, AuthResponse{Message: msg, Token: token, Username: username})
}
