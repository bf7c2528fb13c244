package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const taskColumns = `id, description, due_date, assigned_user_id, state`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) HealthCheck(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks (description, due_date, assigned_user_id, state)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		task.Description,
		task.DueDate,
		task.AssignedUserID,
		task.State,
	).Scan(&task.ID)

	if err != nil {
		logger.Error("Repository: failed to insert task", err)
		return fmt.Errorf("inserting task: %w", err)
	}

	warnSlow("insert task", start)
	return nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET description = $1,
				due_date = $2,
				assigned_user_id = $3,
				state = $4
			WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query,
		task.Description,
		task.DueDate,
		task.AssignedUserID,
		task.State,
		task.ID,
	)
	if err != nil {
		logger.Error("Repository: failed to update task", err)
		return fmt.Errorf("updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	warnSlow("update task", start)
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task := &models.Task{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Description,
		&task.DueDate,
		&task.AssignedUserID,
		&task.State,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: failed to fetch task", err)
		return nil, fmt.Errorf("fetching task: %w", err)
	}

	warnSlow("select task", start)
	return task, nil
}

func (r *TaskRepo) GetAll(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	return r.queryTasks(ctx, query)
}

func (r *TaskRepo) GetByState(ctx context.Context, state models.TaskState) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE state = $1`
	return r.queryTasks(ctx, query, state)
}

func (r *TaskRepo) GetByAssignedUser(ctx context.Context, userID int) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_user_id = $1`
	return r.queryTasks(ctx, query, userID)
}

func (r *TaskRepo) GetByDueDate(ctx context.Context, dueDate models.Date) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date = $1`
	return r.queryTasks(ctx, query, dueDate)
}

func (r *TaskRepo) GetDueOnWithState(ctx context.Context, dueDate models.Date, state models.TaskState) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date = $1 AND state = $2`
	return r.queryTasks(ctx, query, dueDate, state)
}

func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: failed to delete task", err)
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	warnSlow("delete task", start)
	return nil
}

func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: failed to fetch tasks", err)
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task := &models.Task{}
		err := rows.Scan(
			&task.ID,
			&task.Description,
			&task.DueDate,
			&task.AssignedUserID,
			&task.State,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	warnSlow("select tasks", start)
	return tasks, nil
}

func warnSlow(op string, start time.Time) {
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		logger.Warn("Repository: slow query",
			zap.String("operation", op),
			zap.Duration("ms", elapsed))
	}
}
