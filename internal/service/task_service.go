package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskmanager/internal/config"
	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"

	"go.uber.org/zap"
)

type TaskService struct {
	tasks         TaskRepository
	users         UserRepository
	dueDatePolicy config.DueDatePolicy
}

func NewTaskService(tasks TaskRepository, users UserRepository, policy config.DueDatePolicy) *TaskService {
	if policy == "" {
		policy = config.PolicyFuture
	}
	return &TaskService{
		tasks:         tasks,
		users:         users,
		dueDatePolicy: policy,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.tasks.HealthCheck(ctx); err != nil {
		return fmt.Errorf("service health check: %w", err)
	}
	return nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int("task_id", id))
			return nil, NewNotFound("task", id)
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return task, nil
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask builds a task from the request fields and persists it.
// An empty state defaults to TODO.
func (s *TaskService) CreateTask(ctx context.Context, description string, dueDate models.Date, assignedUserID *int, state models.TaskState) (*models.Task, error) {
	if state == "" {
		state = models.StateTodo
	}

	task := &models.Task{
		Description:    description,
		DueDate:        dueDate,
		AssignedUserID: assignedUserID,
		State:          state,
	}
	if err := s.validateTask(ctx, task, true); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	logger.Info("Service: task created", zap.Int("task_id", task.ID))
	return task, nil
}

// UpdateTask loads the task, applies only the given options and
// persists the merged record. Fields without an option keep their
// stored value.
func (s *TaskService) UpdateTask(ctx context.Context, id int, options ...TaskOption) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int("task_id", id))
			return nil, NewNotFound("task", id)
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}

	for _, opt := range options {
		opt(task)
	}
	if err := s.validateTask(ctx, task, false); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	err := s.tasks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int("task_id", id))
			return NewNotFound("task", id)
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (s *TaskService) GetTasksByState(ctx context.Context, state models.TaskState) ([]*models.Task, error) {
	if !state.Valid() {
		return nil, NewValidationError("state", stateReason())
	}
	tasks, err := s.tasks.GetByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks by state: %w", err)
	}
	return tasks, nil
}

// GetTasksForUser returns the user's tasks, or NotFoundError when the
// user id itself is unknown.
func (s *TaskService) GetTasksForUser(ctx context.Context, userID int) ([]*models.Task, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking user: %w", err)
	}
	if !exists {
		logger.Info("Service: user not found", zap.Int("user_id", userID))
		return nil, NewNotFound("user", userID)
	}

	tasks, err := s.tasks.GetByAssignedUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks for user: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTasksByDueDate(ctx context.Context, dueDate models.Date) ([]*models.Task, error) {
	tasks, err := s.tasks.GetByDueDate(ctx, dueDate)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks by due date: %w", err)
	}
	return tasks, nil
}

// SweepOverdue promotes every TODO task due today to DELAYED and
// reports how many were promoted. Tasks in any other state are left
// alone, which also makes a second run on the same day a no-op.
// A failure to persist one task is logged and does not stop the rest.
func (s *TaskService) SweepOverdue(ctx context.Context) (int, error) {
	today := models.Today()

	overdue, err := s.tasks.GetDueOnWithState(ctx, today, models.StateTodo)
	if err != nil {
		return 0, fmt.Errorf("fetching overdue tasks: %w", err)
	}

	promoted := 0
	for _, task := range overdue {
		task.State = models.StateDelayed
		if err := s.tasks.Update(ctx, task); err != nil {
			logger.Warn("Service: failed to mark task delayed",
				zap.Int("task_id", task.ID),
				zap.Error(err))
			continue
		}
		promoted++
	}
	return promoted, nil
}

// validateTask checks the invariants that need the store or depend on
// configuration; shape-level checks happen in the HTTP layer.
func (s *TaskService) validateTask(ctx context.Context, task *models.Task, creating bool) error {
	if strings.TrimSpace(task.Description) == "" {
		return NewValidationError("description", "must not be blank")
	}
	if !task.State.Valid() {
		return NewValidationError("state", stateReason())
	}

	// A task never exists without a due date, so a patch that clears it
	// is rejected, not just a create that omits it.
	if task.DueDate.IsZero() {
		return NewValidationError("dueDate", "must be set")
	}

	if creating {
		today := models.Today()
		switch s.dueDatePolicy {
		case config.PolicyPresentOrFuture:
			if task.DueDate.Before(today) {
				return NewValidationError("dueDate", "must be today or in the future")
			}
		default:
			if !task.DueDate.After(today) {
				return NewValidationError("dueDate", "must be in the future")
			}
		}
	}

	if task.AssignedUserID != nil {
		exists, err := s.users.Exists(ctx, *task.AssignedUserID)
		if err != nil {
			return fmt.Errorf("checking assigned user: %w", err)
		}
		if !exists {
			return NewValidationError("assignedUser", fmt.Sprintf("user %d does not exist", *task.AssignedUserID))
		}
	}
	return nil
}

func stateReason() string {
	states := models.TaskStates()
	names := make([]string, len(states))
	for i, st := range states {
		names[i] = string(st)
	}
	return "must be one of " + strings.Join(names, ", ")
}
