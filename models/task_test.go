package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskStatusValid(t *testing.T) {
	assert.True(t, StatusNotStarted.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, TaskStatus("Done").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskPatchApplyPartial(t *testing.T) {
	owner := primitive.NewObjectID()
	assignee := primitive.NewObjectID()
	dueDate := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	task := Task{
		Title:        "Write report",
		Description:  "Quarterly report",
		DueDate:      dueDate,
		Status:       StatusNotStarted,
		Owner:        owner,
		AssignedUser: &assignee,
	}

	status := StatusInProgress
	TaskPatch{Status: &status}.Apply(&task)

	// Only the supplied field changes.
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "Quarterly report", task.Description)
	assert.Equal(t, dueDate, task.DueDate)
	assert.Equal(t, owner, task.Owner)
	assert.Equal(t, &assignee, task.AssignedUser)
}

func TestTaskPatchApplyFull(t *testing.T) {
	owner := primitive.NewObjectID()
	task := Task{
		Title:   "Old",
		Status:  StatusNotStarted,
		Owner:   owner,
		DueDate: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
	}

	title := "New"
	description := "Updated"
	newDue := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	status := StatusCompleted
	assignee := primitive.NewObjectID()
	list := primitive.NewObjectID()

	TaskPatch{
		Title:        &title,
		Description:  &description,
		DueDate:      &newDue,
		Status:       &status,
		AssignedUser: &assignee,
		TaskList:     &list,
	}.Apply(&task)

	assert.Equal(t, "New", task.Title)
	assert.Equal(t, "Updated", task.Description)
	assert.Equal(t, newDue, task.DueDate)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, &assignee, task.AssignedUser)
	assert.Equal(t, &list, task.TaskList)
	// Owner is immutable regardless of the patch.
	assert.Equal(t, owner, task.Owner)
}
