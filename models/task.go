package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "Not Started"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	DueDate      time.Time           `bson:"due_date" json:"due_date"`
	Status       TaskStatus          `bson:"status" json:"status"`
	Owner        primitive.ObjectID  `bson:"owner" json:"owner"`
	AssignedUser *primitive.ObjectID `bson:"assigned_user,omitempty" json:"assigned_user,omitempty"`
	TaskList     *primitive.ObjectID `bson:"taskList,omitempty" json:"taskList,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`

	// Resolved display names, filled in by the service layer when listing.
	OwnerName        string `bson:"-" json:"ownerName,omitempty"`
	AssignedUserName string `bson:"-" json:"assignedUserName,omitempty"`
	TaskListName     string `bson:"-" json:"taskListName,omitempty"`
}

// TaskPatch carries a partial update. Nil fields keep their prior value.
type TaskPatch struct {
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
	Status       *TaskStatus         `json:"status,omitempty"`
	AssignedUser *primitive.ObjectID `json:"assigned_user,omitempty"`
	TaskList     *primitive.ObjectID `json:"taskListId,omitempty"`
}

// Apply merges the patch into the task. Owner is never touched; it is
// immutable after creation.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.AssignedUser != nil {
		t.AssignedUser = p.AssignedUser
	}
	if p.TaskList != nil {
		t.TaskList = p.TaskList
	}
}
