package service

import (
	"context"

	"taskmanager/internal/models"
)

// TaskRepository is the store contract the task service depends on.
// Implementations live in internal/repository.
type TaskRepository interface {
	Create(context.Context, *models.Task) error
	Update(context.Context, *models.Task) error
	GetByID(context.Context, int) (*models.Task, error)
	GetAll(context.Context) ([]*models.Task, error)
	GetByState(context.Context, models.TaskState) ([]*models.Task, error)
	GetByAssignedUser(context.Context, int) ([]*models.Task, error)
	GetByDueDate(context.Context, models.Date) ([]*models.Task, error)
	GetDueOnWithState(context.Context, models.Date, models.TaskState) ([]*models.Task, error)
	Delete(context.Context, int) error
	HealthCheck(context.Context) error
}

type UserRepository interface {
	Create(context.Context, *models.AppUser) error
	Update(context.Context, *models.AppUser) error
	GetByID(context.Context, int) (*models.AppUser, error)
	GetAll(context.Context) ([]*models.AppUser, error)
	Exists(context.Context, int) (bool, error)
	Delete(context.Context, int) error
}
