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
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.AppUser) error {
	start := time.Now()

	query := `INSERT INTO app_users (username) VALUES ($1) RETURNING id`

	err := r.pool.QueryRow(ctx, query, user.Username).Scan(&user.ID)
	if err != nil {
		logger.Error("Repository: failed to insert user", err)
		return fmt.Errorf("inserting user: %w", err)
	}

	warnSlow("insert user", start)
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.AppUser) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx,
		`UPDATE app_users SET username = $1 WHERE id = $2`,
		user.Username, user.ID)
	if err != nil {
		logger.Error("Repository: failed to update user", err)
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	warnSlow("update user", start)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.AppUser, error) {
	start := time.Now()

	user := &models.AppUser{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username FROM app_users WHERE id = $1`, id).
		Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: failed to fetch user", err)
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	warnSlow("select user", start)
	return user, nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]*models.AppUser, error) {
	start := time.Now()

	rows, err := r.pool.Query(ctx, `SELECT id, username FROM app_users`)
	if err != nil {
		logger.Error("Repository: failed to fetch users", err)
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	defer rows.Close()

	users := []*models.AppUser{}
	for rows.Next() {
		user := &models.AppUser{}
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	warnSlow("select users", start)
	return users, nil
}

func (r *UserRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM app_users WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		logger.Error("Repository: failed to check user", err)
		return false, fmt.Errorf("checking user: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: failed to delete user", err)
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	warnSlow("delete user", start)
	return nil
}
