package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeTaskStatsStatusBuckets(t *testing.T) {
	tasks := []Task{
		{Status: StatusCompleted, DueDate: date(2024, 7, 1)},
		{Status: StatusCompleted, DueDate: date(2024, 7, 1)},
		{Status: StatusInProgress, DueDate: date(2024, 7, 1)},
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1)},
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1)},
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1)},
	}

	stats := ComputeTaskStats(tasks, nil, date(2024, 6, 15))

	assert.Equal(t, 6, stats.TotalTasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 3, stats.NotStartedTasks)

	// Each task lands in exactly one bucket.
	assert.Equal(t, stats.TotalTasks, stats.CompletedTasks+stats.InProgressTasks+stats.NotStartedTasks)
}

func TestComputeTaskStatsOverdueIgnoresStatus(t *testing.T) {
	today := date(2024, 6, 15)
	tasks := []Task{
		{Status: StatusCompleted, DueDate: date(2024, 6, 10)},
		{Status: StatusNotStarted, DueDate: date(2024, 6, 14)},
		{Status: StatusInProgress, DueDate: date(2024, 6, 20)},
	}

	stats := ComputeTaskStats(tasks, nil, today)

	// A completed task past its due date still counts as overdue.
	assert.Equal(t, 2, stats.OverdueTasks)
	assert.Equal(t, 0, stats.TasksDueToday)
}

func TestComputeTaskStatsDueToday(t *testing.T) {
	today := time.Date(2024, 6, 15, 17, 30, 0, 0, time.UTC)
	tasks := []Task{
		{Status: StatusNotStarted, DueDate: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)},
		{Status: StatusNotStarted, DueDate: date(2024, 6, 16)},
	}

	stats := ComputeTaskStats(tasks, nil, today)

	// Comparison is on the calendar date; time of day is irrelevant.
	assert.Equal(t, 1, stats.TasksDueToday)
	assert.Equal(t, 0, stats.OverdueTasks)
}

func TestComputeTaskStatsPerUser(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	names := map[primitive.ObjectID]string{
		userA: "Alice",
		userB: "Bob",
	}

	tasks := []Task{
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1), AssignedUser: &userA},
		{Status: StatusInProgress, DueDate: date(2024, 7, 1), AssignedUser: &userA},
		{Status: StatusCompleted, DueDate: date(2024, 7, 1), AssignedUser: &userA},
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1), AssignedUser: &userB},
		{Status: StatusNotStarted, DueDate: date(2024, 7, 1)}, // unassigned
	}

	stats := ComputeTaskStats(tasks, names, date(2024, 6, 15))

	require.Len(t, stats.TasksPerUser, 2)
	assert.Equal(t, UserTaskCount{Name: "Alice", TaskCount: 3}, stats.TasksPerUser[userA.Hex()])
	assert.Equal(t, UserTaskCount{Name: "Bob", TaskCount: 1}, stats.TasksPerUser[userB.Hex()])
}

func TestComputeTaskStatsEmptySet(t *testing.T) {
	stats := ComputeTaskStats(nil, nil, date(2024, 6, 15))

	assert.Equal(t, 0, stats.TotalTasks)
	assert.Empty(t, stats.TasksPerUser)
	assert.NotNil(t, stats.TasksPerUser)
}
