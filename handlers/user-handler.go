package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"users": users})
}

type manageUserRequest struct {
	Action string `json:"action"`
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"usertype"`
}

// ManageUsers serves POST /api/users with an action discriminator
// (add | update | delete). All three mutations are admin-only.
func (h *UserHandler) ManageUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}
	if !actor.IsAdmin() {
		respondError(w, models.Forbidden("access forbidden: insufficient permissions"))
		return
	}

	var req manageUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	if req.Action == "" {
		respondError(w, models.Validation("missing required action field"))
		return
	}

	switch req.Action {
	case "add":
		_, emailSent, err := h.UserService.AddUser(r.Context(), req.Name, req.Email, req.Role, requestBaseURL(r))
		if err != nil {
			respondError(w, err)
			return
		}
		message := "User added successfully"
		if !emailSent {
			message = "User added successfully, but the welcome email could not be sent"
		}
		respondJSON(w, http.StatusCreated, envelope{"message": message, "status": http.StatusCreated})

	case "update":
		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			respondError(w, models.Validation("invalid user ID format"))
			return
		}
		if err := h.UserService.UpdateUser(r.Context(), id, req.Name, req.Email, req.Role); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"message": "User updated successfully", "status": http.StatusOK})

	case "delete":
		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			respondError(w, models.Validation("invalid user ID format"))
			return
		}
		if err := h.UserService.DeleteUser(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"message": "User deleted successfully", "status": http.StatusOK})

	default:
		respondError(w, models.Validation("invalid action"))
	}
}
