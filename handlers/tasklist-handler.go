package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/policy"
	"github.com/CyberSaikat/task-management-soft/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskListHandler struct {
	TaskListService *services.TaskListService
	UserService     *services.UserService
}

func NewTaskListHandler(taskListService *services.TaskListService, userService *services.UserService) *TaskListHandler {
	return &TaskListHandler{TaskListService: taskListService, UserService: userService}
}

type taskListRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Action string `json:"action"`
}

func (h *TaskListHandler) ListTaskLists(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	taskLists, err := h.TaskListService.ListTaskLists(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"taskLists": taskLists})
}

func (h *TaskListHandler) CreateTaskList(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	var req taskListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	if req.Action != "add" {
		respondError(w, models.Validation("invalid action"))
		return
	}

	taskList, err := h.TaskListService.CreateTaskList(r.Context(), actor, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, envelope{"message": "Task list added successfully", "taskList": taskList})
}

func (h *TaskListHandler) UpdateTaskList(w http.ResponseWriter, r *http.Request) {
	var req taskListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	if req.Action != "update" {
		respondError(w, models.Validation("invalid action"))
		return
	}

	h.withTaskList(w, r, req.ID, policy.ActionUpdate, func(list *models.TaskList) {
		updated, err := h.TaskListService.UpdateTaskListName(r.Context(), list.ID, req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"message": "Task list updated successfully", "taskList": updated})
	})
}

func (h *TaskListHandler) DeleteTaskList(w http.ResponseWriter, r *http.Request) {
	var req taskListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}

	h.withTaskList(w, r, req.ID, policy.ActionDelete, func(list *models.TaskList) {
		if err := h.TaskListService.DeleteTaskList(r.Context(), list.ID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"message": "Task list deleted successfully", "status": http.StatusOK})
	})
}

func (h *TaskListHandler) withTaskList(w http.ResponseWriter, r *http.Request, idStr string, action policy.Action, fn func(list *models.TaskList)) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		respondError(w, models.Validation("invalid task list ID format"))
		return
	}

	list, err := h.TaskListService.GetTaskListByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if !policy.CanAccessTaskList(actor, *list, action) {
		respondError(w, models.Forbidden("access forbidden: insufficient permissions"))
		return
	}

	fn(list)
}
