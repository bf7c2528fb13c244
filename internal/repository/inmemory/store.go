package inmemory

import (
	"sync"

	"taskmanager/internal/models"
)

// Store keeps both tables in process memory behind one lock, so the
// user repo can clear task assignments the way the SQL schema does
// with ON DELETE SET NULL. Ids are assigned serially like the store
// would.
type Store struct {
	mtx sync.RWMutex

	tasks   map[int]*models.Task
	taskIDs []int

	users   map[int]*models.AppUser
	userIDs []int

	nextTaskID int
	nextUserID int
}

func NewStore() *Store {
	return &Store{
		tasks:      make(map[int]*models.Task),
		users:      make(map[int]*models.AppUser),
		nextTaskID: 1,
		nextUserID: 1,
	}
}

func (s *Store) Tasks() *TaskRepo {
	return &TaskRepo{store: s}
}

func (s *Store) Users() *UserRepo {
	return &UserRepo{store: s}
}

func cloneTask(t *models.Task) *models.Task {
	clone := *t
	if t.AssignedUserID != nil {
		id := *t.AssignedUserID
		clone.AssignedUserID = &id
	}
	return &clone
}

func cloneUser(u *models.AppUser) *models.AppUser {
	clone := *u
	return &clone
}
