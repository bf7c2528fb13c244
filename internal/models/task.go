package models

type Task struct {
	ID             int       `json:"id" db:"id"`
	Description    string    `json:"description" db:"description"`
	DueDate        Date      `json:"due_date" db:"due_date"`
	AssignedUserID *int      `json:"assigned_user_id,omitempty" db:"assigned_user_id"`
	State          TaskState `json:"state" db:"state"`
}

type TaskState string

const StateTodo TaskState = "TODO"
const StateInProgress TaskState = "IN_PROGRESS"
const StateCompleted TaskState = "COMPLETED"
const StateDelayed TaskState = "DELAYED"

func (s TaskState) Valid() bool {
	switch s {
	case StateTodo, StateInProgress, StateCompleted, StateDelayed:
		return true
	}
	return false
}

// TaskStates lists every accepted state, in declaration order.
func TaskStates() []TaskState {
	return []TaskState{StateTodo, StateInProgress, StateCompleted, StateDelayed}
}
