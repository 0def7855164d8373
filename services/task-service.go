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

type TaskService struct {
	TasksCollection     *mongo.Collection
	TaskListsCollection *mongo.Collection
	UsersCollection     *mongo.Collection
}

func NewTaskService(tasksCollection, taskListsCollection, usersCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:     tasksCollection,
		TaskListsCollection: taskListsCollection,
		UsersCollection:     usersCollection,
	}
}

// TaskScopeFilter builds the query filter for listing tasks as the given
// actor: admins see everything, everyone else sees tasks they own or are
// assigned to.
func TaskScopeFilter(actor models.User) bson.M {
	if actor.IsAdmin() {
		return bson.M{}
	}
	return bson.M{"$or": []bson.M{
		{"owner": actor.ID},
		{"assigned_user": actor.ID},
	}}
}

// FilterResolvedTasks drops tasks whose task-list reference no longer
// resolves. Task lists are deleted without cascading, so this is the
// integrity backstop for the dangling references they leave behind.
func FilterResolvedTasks(tasks []models.Task, existingLists map[primitive.ObjectID]bool) []models.Task {
	resolved := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.TaskList != nil && existingLists[*task.TaskList] {
			resolved = append(resolved, task)
		}
	}
	return resolved
}

func (s *TaskService) CreateTask(ctx context.Context, actor models.User, title, description string, dueDate time.Time, status models.TaskStatus, assignedUser, taskList *primitive.ObjectID) (*models.Task, error) {
	if title == "" || dueDate.IsZero() {
		return nil, models.Validation("title and due date are required")
	}

	if status == "" {
		status = models.StatusNotStarted
	}
	if !status.Valid() {
		return nil, models.Validation("invalid task status")
	}

	now := time.Now()
	task := &models.Task{
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		Status:       status,
		Owner:        actor.ID,
		AssignedUser: assignedUser,
		TaskList:     taskList,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	return task, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		return nil, models.NotFound("task not found")
	}
	return &task, nil
}

// ListTasks returns the actor-scoped task set with resolved display names,
// excluding tasks whose task list no longer exists.
func (s *TaskService) ListTasks(ctx context.Context, actor models.User) ([]models.Task, error) {
	tasks, err := s.findTasks(ctx, TaskScopeFilter(actor))
	if err != nil {
		return nil, err
	}

	lists, err := s.listIndex(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[primitive.ObjectID]bool, len(lists))
	for id := range lists {
		existing[id] = true
	}
	tasks = FilterResolvedTasks(tasks, existing)

	if err := s.populateNames(ctx, tasks, lists); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListMyTasks returns tasks owned by or assigned to the caller regardless of
// role.
func (s *TaskService) ListMyTasks(ctx context.Context, actor models.User) ([]models.Task, error) {
	filter := bson.M{"$or": []bson.M{
		{"owner": actor.ID},
		{"assigned_user": actor.ID},
	}}
	return s.findTasks(ctx, filter)
}

// UpdateTask merges the patch into the stored task. Fields absent from the
// patch keep their prior value.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.TaskList != nil {
		var list models.TaskList
		if err := s.TaskListsCollection.FindOne(ctx, bson.M{"_id": *patch.TaskList}).Decode(&list); err != nil {
			return nil, models.NotFound("task list not found")
		}
	}

	patch.Apply(task)
	if !task.Status.Valid() {
		return nil, models.Validation("invalid task status")
	}
	task.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":         task.Title,
		"description":   task.Description,
		"due_date":      task.DueDate,
		"status":        task.Status,
		"assigned_user": task.AssignedUser,
		"taskList":      task.TaskList,
		"updated_at":    task.UpdatedAt,
	}}
	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, models.NotFound("task not found")
	}

	return task, nil
}

// ChangeTaskStatus performs the status-only update used by the board view.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, models.Validation("invalid task status")
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, models.NotFound("task not found")
	}

	return s.GetTaskByID(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound("task not found")
	}
	return nil
}

// GetTaskStats aggregates statistics over the actor-scoped task set.
func (s *TaskService) GetTaskStats(ctx context.Context, actor models.User, today time.Time) (models.TaskStats, error) {
	tasks, err := s.findTasks(ctx, TaskScopeFilter(actor))
	if err != nil {
		return models.TaskStats{}, err
	}

	names, err := s.assigneeNames(ctx, tasks)
	if err != nil {
		return models.TaskStats{}, err
	}

	return models.ComputeTaskStats(tasks, names, today), nil
}

func (s *TaskService) findTasks(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := s.TasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

func (s *TaskService) listIndex(ctx context.Context) (map[primitive.ObjectID]string, error) {
	cursor, err := s.TaskListsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task lists: %v", err)
	}
	defer cursor.Close(ctx)

	var lists []models.TaskList
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode task lists: %v", err)
	}

	index := make(map[primitive.ObjectID]string, len(lists))
	for _, list := range lists {
		index[list.ID] = list.Name
	}
	return index, nil
}

// assigneeNames resolves the display names for every assignee referenced by
// the task set.
func (s *TaskService) assigneeNames(ctx context.Context, tasks []models.Task) (map[primitive.ObjectID]string, error) {
	ids := make([]primitive.ObjectID, 0, len(tasks))
	seen := make(map[primitive.ObjectID]bool)
	for _, task := range tasks {
		if task.AssignedUser != nil && !seen[*task.AssignedUser] {
			seen[*task.AssignedUser] = true
			ids = append(ids, *task.AssignedUser)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assignees: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode assignees: %v", err)
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}

// populateNames fills the resolved owner/assignee/list display names on the
// tasks, the equivalent of the reference populate the API responses expect.
func (s *TaskService) populateNames(ctx context.Context, tasks []models.Task, lists map[primitive.ObjectID]string) error {
	ids := make([]primitive.ObjectID, 0, len(tasks)*2)
	seen := make(map[primitive.ObjectID]bool)
	for _, task := range tasks {
		if !seen[task.Owner] {
			seen[task.Owner] = true
			ids = append(ids, task.Owner)
		}
		if task.AssignedUser != nil && !seen[*task.AssignedUser] {
			seen[*task.AssignedUser] = true
			ids = append(ids, *task.AssignedUser)
		}
	}

	names := map[primitive.ObjectID]string{}
	if len(ids) > 0 {
		cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return fmt.Errorf("failed to retrieve users: %v", err)
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			return fmt.Errorf("failed to decode users: %v", err)
		}
		for _, user := range users {
			names[user.ID] = user.Name
		}
	}

	for i := range tasks {
		tasks[i].OwnerName = names[tasks[i].Owner]
		if tasks[i].AssignedUser != nil {
			tasks[i].AssignedUserName = names[*tasks[i].AssignedUser]
		}
		if tasks[i].TaskList != nil {
			tasks[i].TaskListName = lists[*tasks[i].TaskList]
		}
	}
	return nil
}
