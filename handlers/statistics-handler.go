package handlers

import (
	"net/http"
	"time"

	"github.com/CyberSaikat/task-management-soft/services"
)

type StatisticsHandler struct {
	TaskService *services.TaskService
	UserService *services.UserService
}

func NewStatisticsHandler(taskService *services.TaskService, userService *services.UserService) *StatisticsHandler {
	return &StatisticsHandler{TaskService: taskService, UserService: userService}
}

// GetStatistics serves GET /api/statistics: aggregate counts over the
// caller's scoped task set, admins over the whole tenant.
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.UserService)
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.TaskService.GetTaskStats(r.Context(), actor, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"taskStats": stats})
}
