package services

import (
	"testing"

	"github.com/CyberSaikat/task-management-soft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskScopeFilterAdmin(t *testing.T) {
	admin := models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	assert.Equal(t, bson.M{}, TaskScopeFilter(admin))
}

func TestTaskScopeFilterUser(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	filter := TaskScopeFilter(user)
	require.Contains(t, filter, "$or")
	clauses := filter["$or"].([]bson.M)
	require.Len(t, clauses, 2)
	assert.Equal(t, bson.M{"owner": user.ID}, clauses[0])
	assert.Equal(t, bson.M{"assigned_user": user.ID}, clauses[1])
}

func TestFilterResolvedTasks(t *testing.T) {
	liveList := primitive.NewObjectID()
	deadList := primitive.NewObjectID()
	existing := map[primitive.ObjectID]bool{liveList: true}

	tasks := []models.Task{
		{Title: "kept", TaskList: &liveList},
		{Title: "dangling", TaskList: &deadList},
		{Title: "unlinked", TaskList: nil},
	}

	resolved := FilterResolvedTasks(tasks, existing)

	require.Len(t, resolved, 1)
	assert.Equal(t, "kept", resolved[0].Title)
}

func TestFilterResolvedTasksEmpty(t *testing.T) {
	resolved := FilterResolvedTasks(nil, map[primitive.ObjectID]bool{})

	assert.NotNil(t, resolved)
	assert.Empty(t, resolved)
}
