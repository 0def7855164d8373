package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserTaskCount struct {
	Name      string `json:"name"`
	TaskCount int    `json:"taskCount"`
}

type TaskStats struct {
	TotalTasks      int                      `json:"totalTasks"`
	CompletedTasks  int                      `json:"completedTasks"`
	InProgressTasks int                      `json:"inProgressTasks"`
	NotStartedTasks int                      `json:"notStartedTasks"`
	OverdueTasks    int                      `json:"overdueTasks"`
	TasksDueToday   int                      `json:"tasksDueToday"`
	TasksPerUser    map[string]UserTaskCount `json:"tasksPerUser"`
}

// ComputeTaskStats aggregates a task set already scoped to the requesting
// actor. Everything is counted in a single pass: each task lands in exactly
// one status bucket, and overdue/due-today comparisons work on calendar
// dates only. A completed task past its due date still counts as overdue.
// assigneeNames maps assignee ids to display names for the per-user
// breakdown; tasks without an assignee contribute to no entry.
func ComputeTaskStats(tasks []Task, assigneeNames map[primitive.ObjectID]string, today time.Time) TaskStats {
	stats := TaskStats{
		TasksPerUser: make(map[string]UserTaskCount),
	}

	todayDate := calendarDate(today, today.Location())
	stats.TotalTasks = len(tasks)

	for _, task := range tasks {
		switch task.Status {
		case StatusCompleted:
			stats.CompletedTasks++
		case StatusInProgress:
			stats.InProgressTasks++
		case StatusNotStarted:
			stats.NotStartedTasks++
		}

		dueDate := calendarDate(task.DueDate, today.Location())
		if dueDate.Before(todayDate) {
			stats.OverdueTasks++
		}
		if dueDate.Equal(todayDate) {
			stats.TasksDueToday++
		}

		if task.AssignedUser != nil {
			key := task.AssignedUser.Hex()
			entry, ok := stats.TasksPerUser[key]
			if !ok {
				entry = UserTaskCount{Name: assigneeNames[*task.AssignedUser]}
			}
			entry.TaskCount++
			stats.TasksPerUser[key] = entry
		}
	}

	return stats
}

func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
