package inmemory

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type TaskRepo struct {
	store *Store
}

func (r *TaskRepo) HealthCheck(ctx context.Context) error {
	return nil
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task.ID = s.nextTaskID
	s.nextTaskID++

	s.tasks[task.ID] = cloneTask(task)
	s.taskIDs = append(s.taskIDs, task.ID)
	return nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	s := r.store
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTask(task), nil
}

func (r *TaskRepo) GetAll(ctx context.Context) ([]*models.Task, error) {
	return r.filter(func(*models.Task) bool { return true }), nil
}

func (r *TaskRepo) GetByState(ctx context.Context, state models.TaskState) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool {
		return t.State == state
	}), nil
}

func (r *TaskRepo) GetByAssignedUser(ctx context.Context, userID int) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool {
		return t.AssignedUserID != nil && *t.AssignedUserID == userID
	}), nil
}

func (r *TaskRepo) GetByDueDate(ctx context.Context, dueDate models.Date) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool {
		return t.DueDate.Equal(dueDate)
	}), nil
}

func (r *TaskRepo) GetDueOnWithState(ctx context.Context, dueDate models.Date, state models.TaskState) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool {
		return t.DueDate.Equal(dueDate) && t.State == state
	}), nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.taskIDs {
		if existing == id {
			s.taskIDs = append(s.taskIDs[:i], s.taskIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TaskRepo) filter(keep func(*models.Task) bool) []*models.Task {
	s := r.store
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Task{}
	for _, id := range s.taskIDs {
		if task := s.tasks[id]; keep(task) {
			res = append(res, cloneTask(task))
		}
	}
	return res
}
