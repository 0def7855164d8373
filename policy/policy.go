// Package policy holds the access-control decisions for tasks and task
// lists. The functions are pure and must be consulted before any mutating
// store operation, never after.
package policy

import (
	"github.com/CyberSaikat/task-management-soft/models"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanAccessTask decides whether actor may perform action on task. Admins are
// unrestricted. A non-admin may read or update a task they own or are
// assigned to; delete is reserved for the owner strictly, so an assignee who
// is not the owner cannot delete.
func CanAccessTask(actor models.User, task models.Task, action Action) bool {
	if actor.IsAdmin() {
		return true
	}

	isOwner := task.Owner == actor.ID
	isAssignee := task.AssignedUser != nil && *task.AssignedUser == actor.ID

	switch action {
	case ActionRead, ActionUpdate:
		return isOwner || isAssignee
	case ActionDelete:
		return isOwner
	}
	return false
}

// CanAccessTaskList decides whether actor may perform action on a task list.
// Admins are unrestricted; everyone else is limited to lists they own.
func CanAccessTaskList(actor models.User, list models.TaskList, action Action) bool {
	if actor.IsAdmin() {
		return true
	}

	switch action {
	case ActionRead, ActionUpdate, ActionDelete:
		return list.Owner == actor.ID
	}
	return false
}
