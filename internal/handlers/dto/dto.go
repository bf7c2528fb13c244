package dto

import (
	"taskmanager/internal/models"
)

type CreateTaskRequest struct {
	Description    string           `json:"description" validate:"required"`
	DueDate        models.Date      `json:"due_date" validate:"required"`
	AssignedUserID *int             `json:"assigned_user_id,omitempty"`
	State          models.TaskState `json:"state,omitempty" validate:"omitempty,taskstate"`
}

// UpdateTaskRequest is a merge-patch: nil fields leave the stored
// value untouched.
type UpdateTaskRequest struct {
	Description    *string           `json:"description,omitempty" validate:"omitempty,min=1"`
	DueDate        *models.Date      `json:"due_date,omitempty"`
	AssignedUserID *int              `json:"assigned_user_id,omitempty"`
	State          *models.TaskState `json:"state,omitempty" validate:"omitempty,taskstate"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type TaskResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	// DueDate is rendered as "2006-01-02".
	DueDate      string        `json:"due_date"`
	AssignedUser *UserResponse `json:"assigned_user,omitempty"`
	State        string        `json:"state"`
}

func FromUser(u *models.AppUser) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}

func FromUserList(users []*models.AppUser) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = FromUser(u)
	}
	return result
}

// FromTask shapes a task for the wire. The assigned user is embedded
// by value when the caller resolved it; a nil user leaves the field
// out.
func FromTask(t *models.Task, assignedUser *models.AppUser) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Description: t.Description,
		DueDate:     t.DueDate.String(),
		State:       string(t.State),
	}
	if assignedUser != nil {
		user := FromUser(assignedUser)
		resp.AssignedUser = &user
	}
	return resp
}

func FromTaskList(tasks []*models.Task, users map[int]*models.AppUser) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		var assigned *models.AppUser
		if t.AssignedUserID != nil {
			assigned = users[*t.AssignedUserID]
		}
		result[i] = FromTask(t, assigned)
	}
	return result
}
