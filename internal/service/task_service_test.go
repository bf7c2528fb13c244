package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
	"taskmanager/internal/repository/inmemory"
	"taskmanager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskRepository mocks the task store.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *models.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *models.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetAll(ctx context.Context) ([]*models.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByState(ctx context.Context, state models.TaskState) ([]*models.Task, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByAssignedUser(ctx context.Context, userID int) ([]*models.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByDueDate(ctx context.Context, dueDate models.Date) ([]*models.Task, error) {
	args := m.Called(ctx, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetDueOnWithState(ctx context.Context, dueDate models.Date, state models.TaskState) ([]*models.Task, error) {
	args := m.Called(ctx, dueDate, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserRepository mocks the user store.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.AppUser) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *models.AppUser) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppUser), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.AppUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AppUser), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)
var _ service.UserRepository = (*MockUserRepository)(nil)

// newFixture builds a task service over the in-memory store for
// behavioral tests that want real read-modify-write flows.
func newFixture(policy config.DueDatePolicy) (*service.TaskService, *inmemory.Store) {
	store := inmemory.NewStore()
	return service.NewTaskService(store.Tasks(), store.Users(), policy), store
}

func tomorrow() models.Date {
	return models.DateOf(time.Now().AddDate(0, 0, 1))
}

func yesterday() models.Date {
	return models.DateOf(time.Now().AddDate(0, 0, -1))
}

func TestCreateTaskDefaultsToTodo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	task, err := svc.CreateTask(ctx, "write report", tomorrow(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, models.StateTodo, task.State)
	assert.NotZero(t, task.ID)
}

func TestCreateTaskKeepsExplicitState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	task, err := svc.CreateTask(ctx, "already going", tomorrow(), nil, models.StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, task.State)
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		policy      config.DueDatePolicy
		description string
		dueDate     models.Date
		assignedTo  *int
		state       models.TaskState
		wantField   string
	}{
		{
			name:        "blank description",
			policy:      config.PolicyFuture,
			description: "   ",
			dueDate:     tomorrow(),
			wantField:   "description",
		},
		{
			name:        "zero due date",
			policy:      config.PolicyFuture,
			description: "task",
			wantField:   "dueDate",
		},
		{
			name:        "past due date",
			policy:      config.PolicyFuture,
			description: "task",
			dueDate:     yesterday(),
			wantField:   "dueDate",
		},
		{
			name:        "today rejected under future policy",
			policy:      config.PolicyFuture,
			description: "task",
			dueDate:     models.Today(),
			wantField:   "dueDate",
		},
		{
			name:        "past rejected under present_or_future policy",
			policy:      config.PolicyPresentOrFuture,
			description: "task",
			dueDate:     yesterday(),
			wantField:   "dueDate",
		},
		{
			name:        "invalid state",
			policy:      config.PolicyFuture,
			description: "task",
			dueDate:     tomorrow(),
			state:       models.TaskState("DONE"),
			wantField:   "state",
		},
		{
			name:        "unknown assigned user",
			policy:      config.PolicyFuture,
			description: "task",
			dueDate:     tomorrow(),
			assignedTo:  intPtr(999),
			wantField:   "assignedUser",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newFixture(tt.policy)

			_, err := svc.CreateTask(ctx, tt.description, tt.dueDate, tt.assignedTo, tt.state)

			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.wantField)
		})
	}
}

func TestCreateTaskTodayAllowedUnderPresentOrFuture(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyPresentOrFuture)

	task, err := svc.CreateTask(ctx, "due today", models.Today(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, models.StateTodo, task.State)
}

func TestCreateTaskWithExistingAssignedUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newFixture(config.PolicyFuture)

	user := &models.AppUser{Username: "alice"}
	require.NoError(t, store.Users().Create(ctx, user))

	task, err := svc.CreateTask(ctx, "for alice", tomorrow(), &user.ID, "")
	require.NoError(t, err)
	require.NotNil(t, task.AssignedUserID)
	assert.Equal(t, user.ID, *task.AssignedUserID)
}

func TestUpdateTaskMergePatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	due := tomorrow()
	created, err := svc.CreateTask(ctx, "write report", due, nil, "")
	require.NoError(t, err)

	// only the state is patched; everything else must survive
	updated, err := svc.UpdateTask(ctx, created.ID, service.WithState(models.StateCompleted))
	require.NoError(t, err)

	assert.Equal(t, models.StateCompleted, updated.State)
	assert.Equal(t, "write report", updated.Description)
	assert.True(t, due.Equal(updated.DueDate))

	// and the other way around: patching the description keeps the state
	updated, err = svc.UpdateTask(ctx, created.ID, service.WithDescription("final report"))
	require.NoError(t, err)

	assert.Equal(t, "final report", updated.Description)
	assert.Equal(t, models.StateCompleted, updated.State)
}

func TestUpdateTaskAllowsPastDueDate(t *testing.T) {
	// The creation-time due date policy does not apply to updates, so
	// a task can be back-dated to become sweep-eligible.
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	created, err := svc.CreateTask(ctx, "task", tomorrow(), nil, "")
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, created.ID, service.WithDueDate(models.Today()))
	require.NoError(t, err)
	assert.True(t, models.Today().Equal(updated.DueDate))
}

func TestUpdateTaskRejectsClearedDueDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	created, err := svc.CreateTask(ctx, "task", tomorrow(), nil, "")
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, created.ID, service.WithDueDate(models.Date{}))

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "dueDate")

	// the stored record keeps its date
	got, err := svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.DueDate.IsZero())
}

func TestUpdateTaskValidatesMergedRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	created, err := svc.CreateTask(ctx, "task", tomorrow(), nil, "")
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, created.ID, service.WithAssignedUser(999))

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "assignedUser")
}

func TestUpdateTaskNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	_, err := svc.UpdateTask(ctx, 999, service.WithDescription("nope"))

	var notFound *service.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "task", notFound.Resource)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	created, err := svc.CreateTask(ctx, "doomed", tomorrow(), nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))

	_, err = svc.GetTaskByID(ctx, created.ID)
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	err = svc.DeleteTask(ctx, created.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestGetTasksByStateRejectsUnknownState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	_, err := svc.GetTasksByState(ctx, models.TaskState("DONE"))

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "state")
}

func TestGetTasksForUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newFixture(config.PolicyFuture)

	user := &models.AppUser{Username: "bob"}
	require.NoError(t, store.Users().Create(ctx, user))

	_, err := svc.CreateTask(ctx, "bob's task", tomorrow(), &user.ID, "")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "nobody's task", tomorrow(), nil, "")
	require.NoError(t, err)

	tasks, err := svc.GetTasksForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "bob's task", tasks[0].Description)
}

func TestGetTasksForUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture(config.PolicyFuture)

	_, err := svc.GetTasksForUser(ctx, 999)

	var notFound *service.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Resource)
}

func TestSweepOverdue(t *testing.T) {
	ctx := context.Background()
	svc, store := newFixture(config.PolicyPresentOrFuture)
	tasks := store.Tasks()

	today := models.Today()

	dueTodayTodo1, err := svc.CreateTask(ctx, "due today 1", today, nil, "")
	require.NoError(t, err)
	dueTodayTodo2, err := svc.CreateTask(ctx, "due today 2", today, nil, "")
	require.NoError(t, err)
	dueTodayInProgress, err := svc.CreateTask(ctx, "in progress", today, nil, models.StateInProgress)
	require.NoError(t, err)
	dueTodayCompleted, err := svc.CreateTask(ctx, "completed", today, nil, models.StateCompleted)
	require.NoError(t, err)
	dueTomorrow, err := svc.CreateTask(ctx, "due tomorrow", tomorrow(), nil, "")
	require.NoError(t, err)

	promoted, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, promoted)

	assertState := func(id int, want models.TaskState) {
		t.Helper()
		got, err := tasks.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.State)
	}
	assertState(dueTodayTodo1.ID, models.StateDelayed)
	assertState(dueTodayTodo2.ID, models.StateDelayed)
	assertState(dueTodayInProgress.ID, models.StateInProgress)
	assertState(dueTodayCompleted.ID, models.StateCompleted)
	assertState(dueTomorrow.ID, models.StateTodo)

	// a second run finds no TODO tasks among today's set
	promoted, err = svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, promoted)
}

func TestSweepOverdueRepositoryError(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepository)
	mockUsers := new(MockUserRepository)
	svc := service.NewTaskService(mockTasks, mockUsers, config.PolicyFuture)

	mockTasks.On("GetDueOnWithState", mock.Anything, models.Today(), models.StateTodo).
		Return(nil, errors.New("connection refused"))

	_, err := svc.SweepOverdue(ctx)
	assert.Error(t, err)
	mockTasks.AssertExpectations(t)
}

func TestSweepOverdueContinuesAfterUpdateFailure(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepository)
	mockUsers := new(MockUserRepository)
	svc := service.NewTaskService(mockTasks, mockUsers, config.PolicyFuture)

	today := models.Today()
	overdue := []*models.Task{
		{ID: 1, Description: "first", DueDate: today, State: models.StateTodo},
		{ID: 2, Description: "second", DueDate: today, State: models.StateTodo},
	}

	mockTasks.On("GetDueOnWithState", mock.Anything, today, models.StateTodo).Return(overdue, nil)
	mockTasks.On("Update", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
	mockTasks.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	promoted, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)
	mockTasks.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepository)
	mockUsers := new(MockUserRepository)
	svc := service.NewTaskService(mockTasks, mockUsers, config.PolicyFuture)

	mockTasks.On("HealthCheck", mock.Anything).Return(nil).Once()
	assert.NoError(t, svc.HealthCheck(ctx))

	mockTasks.On("HealthCheck", mock.Anything).Return(errors.New("down")).Once()
	assert.Error(t, svc.HealthCheck(ctx))

	mockTasks.AssertExpectations(t)
}

func intPtr(v int) *int {
	return &v
}
