package inmemory

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(ctx context.Context, user *models.AppUser) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++

	s.users[user.ID] = cloneUser(user)
	s.userIDs = append(s.userIDs, user.ID)
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.AppUser) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.AppUser, error) {
	s := r.store
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]*models.AppUser, error) {
	s := r.store
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.AppUser{}
	for _, id := range s.userIDs {
		res = append(res, cloneUser(s.users[id]))
	}
	return res, nil
}

func (r *UserRepo) Exists(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// Delete removes the user and clears the assignment on any task that
// referenced it, mirroring the schema's ON DELETE SET NULL.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	for i, existing := range s.userIDs {
		if existing == id {
			s.userIDs = append(s.userIDs[:i], s.userIDs[i+1:]...)
			break
		}
	}

	for _, task := range s.tasks {
		if task.AssignedUserID != nil && *task.AssignedUserID == id {
			task.AssignedUserID = nil
		}
	}
	return nil
}
