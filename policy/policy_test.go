package policy

import (
	"testing"

	"github.com/CyberSaikat/task-management-soft/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanAccessTaskAdmin(t *testing.T) {
	admin := models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	task := models.Task{Owner: primitive.NewObjectID()}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.True(t, CanAccessTask(admin, task, action), string(action))
	}
}

func TestCanAccessTaskOwner(t *testing.T) {
	owner := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	task := models.Task{Owner: owner.ID}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.True(t, CanAccessTask(owner, task, action), string(action))
	}
}

func TestCanAccessTaskAssignee(t *testing.T) {
	assignee := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	task := models.Task{
		Owner:        primitive.NewObjectID(),
		AssignedUser: &assignee.ID,
	}

	// The assignee may read and update the task, but never delete it.
	assert.True(t, CanAccessTask(assignee, task, ActionRead))
	assert.True(t, CanAccessTask(assignee, task, ActionUpdate))
	assert.False(t, CanAccessTask(assignee, task, ActionDelete))
}

func TestCanAccessTaskStranger(t *testing.T) {
	stranger := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	assignee := primitive.NewObjectID()
	task := models.Task{
		Owner:        primitive.NewObjectID(),
		AssignedUser: &assignee,
	}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.False(t, CanAccessTask(stranger, task, action), string(action))
	}
}

func TestCanAccessTaskUnknownAction(t *testing.T) {
	owner := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	task := models.Task{Owner: owner.ID}

	assert.False(t, CanAccessTask(owner, task, Action("archive")))
}

func TestCanAccessTaskList(t *testing.T) {
	admin := models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	owner := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	stranger := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	list := models.TaskList{Owner: owner.ID}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.True(t, CanAccessTaskList(admin, list, action), string(action))
		assert.True(t, CanAccessTaskList(owner, list, action), string(action))
		assert.False(t, CanAccessTaskList(stranger, list, action), string(action))
	}
}
