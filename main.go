package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/CyberSaikat/task-management-soft/handlers"
	"github.com/CyberSaikat/task-management-soft/logging"
	"github.com/CyberSaikat/task-management-soft/middleware"
	"github.com/CyberSaikat/task-management-soft/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	tasksCollection := db.Collection("tasks")
	taskListsCollection := db.Collection("tasklists")

	emailBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "EmailCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	jwtService := services.NewJWTService([]byte(os.Getenv("JWT_SECRET")))
	userService := services.NewUserService(usersCollection, jwtService, emailBreaker)
	taskService := services.NewTaskService(tasksCollection, taskListsCollection, usersCollection)
	taskListService := services.NewTaskListService(taskListsCollection, usersCollection)

	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, userService)
	taskListHandler := handlers.NewTaskListHandler(taskListService, userService)
	userHandler := handlers.NewUserHandler(userService)
	statisticsHandler := handlers.NewStatisticsHandler(taskService, userService)

	r := mux.NewRouter()

	// Auth routes, open to unauthenticated callers.
	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", authHandler.ResetPassword).Methods(http.MethodPost)

	// Everything else requires a valid session token.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuth(jwtService))

	api.HandleFunc("/tasks/my-tasks", taskHandler.MyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskId}/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskId}", taskHandler.GetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskId}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks", taskHandler.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks", taskHandler.UpdateTaskByBody).Methods(http.MethodPut)
	api.HandleFunc("/tasks", taskHandler.DeleteTaskByBody).Methods(http.MethodDelete)

	api.HandleFunc("/task-lists", taskListHandler.ListTaskLists).Methods(http.MethodGet)
	api.HandleFunc("/task-lists", taskListHandler.CreateTaskList).Methods(http.MethodPost)
	api.HandleFunc("/task-lists", taskListHandler.UpdateTaskList).Methods(http.MethodPut)
	api.HandleFunc("/task-lists", taskListHandler.DeleteTaskList).Methods(http.MethodDelete)

	api.HandleFunc("/users", userHandler.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", userHandler.ManageUsers).Methods(http.MethodPost)

	api.HandleFunc("/statistics", statisticsHandler.GetStatistics).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
