package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/services"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}

	if err := h.UserService.RegisterUser(r.Context(), req.Name, req.Email, req.Password, req.PasswordConfirmation); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, envelope{"message": "User created successfully", "status": http.StatusCreated})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, models.Validation("email and password are required"))
		return
	}

	user, token, err := h.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"message": "User logged in successfully",
		"status":  http.StatusOK,
		"token":   token,
		"name":    user.Name,
		"role":    user.Role,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	if req.Email == "" {
		respondError(w, models.Validation("please fill in all fields"))
		return
	}

	if err := h.UserService.SendPasswordResetLink(r.Context(), req.Email, requestBaseURL(r)); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"message": "Email sent", "status": http.StatusOK})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResetKey string `json:"resetKey"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}

	if err := h.UserService.ResetPassword(r.Context(), req.ResetKey, req.Password); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"message": "Password reset successfully", "status": http.StatusOK})
}

func requestBaseURL(r *http.Request) string {
	protocol := r.Header.Get("X-Forwarded-Proto")
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s", protocol, r.Host)
}
