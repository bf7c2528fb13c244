package models

// AppUser is a registered user that tasks can be assigned to.
// The id is assigned by the store on insert.
type AppUser struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}
