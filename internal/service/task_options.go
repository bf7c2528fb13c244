package service

import "taskmanager/internal/models"

// TaskOption applies one field of a partial update. The HTTP layer
// builds an option per request field that was actually present, so
// absent fields never touch the stored value.
type TaskOption func(*models.Task)

func WithDescription(description string) TaskOption {
	return func(t *models.Task) {
		t.Description = description
	}
}

func WithDueDate(dueDate models.Date) TaskOption {
	return func(t *models.Task) {
		t.DueDate = dueDate
	}
}

func WithAssignedUser(userID int) TaskOption {
	return func(t *models.Task) {
		t.AssignedUserID = &userID
	}
}

func WithState(state models.TaskState) TaskOption {
	return func(t *models.Task) {
		t.State = state
	}
}
