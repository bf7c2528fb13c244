package handlers

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/service"
)

type TaskService interface {
	HealthCheck(context.Context) error
	GetTaskByID(context.Context, int) (*models.Task, error)
	GetAllTasks(context.Context) ([]*models.Task, error)
	CreateTask(ctx context.Context, description string, dueDate models.Date, assignedUserID *int, state models.TaskState) (*models.Task, error)
	UpdateTask(context.Context, int, ...service.TaskOption) (*models.Task, error)
	DeleteTask(context.Context, int) error
	GetTasksByState(context.Context, models.TaskState) ([]*models.Task, error)
	GetTasksForUser(context.Context, int) ([]*models.Task, error)
	GetTasksByDueDate(context.Context, models.Date) ([]*models.Task, error)
}

type UserService interface {
	GetUserByID(context.Context, int) (*models.AppUser, error)
	GetAllUsers(context.Context) ([]*models.AppUser, error)
	CreateUser(context.Context, string) (*models.AppUser, error)
	UpdateUser(context.Context, int, string) (*models.AppUser, error)
	DeleteUser(context.Context, int) error
}
