package services

import (
	"context"
	"fmt"
	"time"

	"github.com/CyberSaikat/task-management-soft/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TaskListService struct {
	TaskListsCollection *mongo.Collection
	UsersCollection     *mongo.Collection
}

func NewTaskListService(taskListsCollection, usersCollection *mongo.Collection) *TaskListService {
	return &TaskListService{
		TaskListsCollection: taskListsCollection,
		UsersCollection:     usersCollection,
	}
}

// ListTaskLists returns the actor-scoped lists: admins see everything,
// everyone else only the lists they own.
func (s *TaskListService) ListTaskLists(ctx context.Context, actor models.User) ([]models.TaskList, error) {
	filter := bson.M{}
	if !actor.IsAdmin() {
		filter["owner"] = actor.ID
	}

	cursor, err := s.TaskListsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task lists: %v", err)
	}
	defer cursor.Close(ctx)

	var lists []models.TaskList
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode task lists: %v", err)
	}

	if err := s.populateOwnerNames(ctx, lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *TaskListService) GetTaskListByID(ctx context.Context, id primitive.ObjectID) (*models.TaskList, error) {
	var list models.TaskList
	err := s.TaskListsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&list)
	if err != nil {
		return nil, models.NotFound("task list not found")
	}
	return &list, nil
}

func (s *TaskListService) CreateTaskList(ctx context.Context, actor models.User, name string) (*models.TaskList, error) {
	if name == "" {
		return nil, models.Validation("name is required")
	}

	now := time.Now()
	list := &models.TaskList{
		Name:      name,
		Owner:     actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.TaskListsCollection.InsertOne(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %v", err)
	}
	list.ID = result.InsertedID.(primitive.ObjectID)

	return list, nil
}

func (s *TaskListService) UpdateTaskListName(ctx context.Context, id primitive.ObjectID, name string) (*models.TaskList, error) {
	if name == "" {
		return nil, models.Validation("name is required")
	}

	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now()}}
	result, err := s.TaskListsCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task list: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, models.NotFound("task list not found")
	}

	return s.GetTaskListByID(ctx, id)
}

// DeleteTaskList removes the list only. Deletion does not cascade to tasks;
// task listings filter out the dangling references afterwards.
func (s *TaskListService) DeleteTaskList(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.TaskListsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task list: %v", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound("task list not found")
	}
	return nil
}

func (s *TaskListService) populateOwnerNames(ctx context.Context, lists []models.TaskList) error {
	ids := make([]primitive.ObjectID, 0, len(lists))
	seen := make(map[primitive.ObjectID]bool)
	for _, list := range lists {
		if !seen[list.Owner] {
			seen[list.Owner] = true
			ids = append(ids, list.Owner)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to retrieve owners: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return fmt.Errorf("failed to decode owners: %v", err)
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	for i := range lists {
		lists[i].OwnerName = names[lists[i].Owner]
	}
	return nil
}
