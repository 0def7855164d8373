package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/policy"
	"github.com/CyberSaikat/task-management-soft/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	TaskService *services.TaskService
	UserService *services.UserService
}

func NewTaskHandler(taskService *services.TaskService, userService *services.UserService) *TaskHandler {
	return &TaskHandler{TaskService: taskService, UserService: userService}
}

type taskRequest struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	Status       string `json:"status"`
	AssignedUser string `json:"assigned_user"`
	TaskListID   string `json:"taskListId"`
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"tasks": tasks})
}

func (h *TaskHandler) MyTasks(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.TaskService.ListMyTasks(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"tasks": tasks})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}

	if req.Title == "" || req.DueDate == "" {
		respondError(w, models.Validation("title and due date are required"))
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(w, err)
		return
	}

	assignedUser, err := optionalObjectID(req.AssignedUser)
	if err != nil {
		respondError(w, models.Validation("invalid assigned user ID format"))
		return
	}
	taskList, err := optionalObjectID(req.TaskListID)
	if err != nil {
		respondError(w, models.Validation("invalid task list ID format"))
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), actor, req.Title, req.Description, dueDate, models.TaskStatus(req.Status), assignedUser, taskList)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, envelope{"message": "Task created successfully", "task": task})
}

// GetTask serves GET /api/tasks/{taskId}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, pathTaskID(r), policy.ActionRead, func(actor models.User, task *models.Task) {
		respondJSON(w, http.StatusOK, envelope{"task": task})
	})
}

// UpdateTask serves PUT /api/tasks/{taskId}; unspecified fields keep their
// prior values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	h.updateTask(w, r, pathTaskID(r))
}

// UpdateTaskByBody serves PUT /api/tasks with a body-addressed id.
func (h *TaskHandler) UpdateTaskByBody(w http.ResponseWriter, r *http.Request) {
	h.updateTask(w, r, "")
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request, idFromPath string) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}

	idStr := idFromPath
	if idStr == "" {
		idStr = req.ID
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		respondError(w, models.Validation("invalid task ID format"))
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !policy.CanAccessTask(actor, *task, policy.ActionUpdate) {
		respondError(w, models.Forbidden("access forbidden: insufficient permissions"))
		return
	}

	patch, err := patchFromRequest(req)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"message": "Task updated successfully", "task": updated})
}

// ChangeTaskStatus serves PUT /api/tasks/{taskId}/status, the status-only
// update available to the owner or the assignee.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, pathTaskID(r), policy.ActionUpdate, func(actor models.User, task *models.Task) {
		var req struct {
			Status models.TaskStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, models.Validation("invalid request format"))
			return
		}

		updated, err := h.TaskService.ChangeTaskStatus(r.Context(), task.ID, req.Status)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, envelope{"message": "Task updated successfully", "task": updated})
	})
}

// DeleteTask serves DELETE /api/tasks/{taskId}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.deleteTask(w, r, pathTaskID(r))
}

// DeleteTaskByBody serves DELETE /api/tasks with a body-addressed id.
func (h *TaskHandler) DeleteTaskByBody(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.Validation("invalid request format"))
		return
	}
	h.deleteTask(w, r, req.ID)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request, idStr string) {
	h.withTask(w, r, idStr, policy.ActionDelete, func(actor models.User, task *models.Task) {
		if err := h.TaskService.DeleteTask(r.Context(), task.ID); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"message": "Task deleted successfully", "status": http.StatusOK})
	})
}

// withTask resolves the actor, loads the task and applies the access policy
// before handing control to fn.
func (h *TaskHandler) withTask(w http.ResponseWriter, r *http.Request, idStr string, action policy.Action, fn func(actor models.User, task *models.Task)) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		respondError(w, models.Validation("invalid task ID format"))
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if !policy.CanAccessTask(actor, *task, action) {
		respondError(w, models.Forbidden("access forbidden: insufficient permissions"))
		return
	}

	fn(actor, task)
}

func pathTaskID(r *http.Request) string {
	return mux.Vars(r)["taskId"]
}

func patchFromRequest(req taskRequest) (models.TaskPatch, error) {
	var patch models.TaskPatch
	if req.Title != "" {
		patch.Title = &req.Title
	}
	if req.Description != "" {
		patch.Description = &req.Description
	}
	if req.DueDate != "" {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.DueDate = &dueDate
	}
	if req.Status != "" {
		status := models.TaskStatus(req.Status)
		patch.Status = &status
	}
	if req.AssignedUser != "" {
		assignedUser, err := optionalObjectID(req.AssignedUser)
		if err != nil {
			return models.TaskPatch{}, models.Validation("invalid assigned user ID format")
		}
		patch.AssignedUser = assignedUser
	}
	if req.TaskListID != "" {
		taskList, err := optionalObjectID(req.TaskListID)
		if err != nil {
			return models.TaskPatch{}, models.Validation("invalid task list ID format")
		}
		patch.TaskList = taskList
	}
	return patch, nil
}

func parseDueDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.Validation("invalid due date format")
}

func optionalObjectID(value string) (*primitive.ObjectID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
