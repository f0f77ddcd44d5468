package models

import "time"

// User is an account that owns projects. The password is only ever stored
// as a bcrypt hash and never leaves the backend.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Project groups tasks under a single owning user.
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task is a single unit of work inside a project. Its owner is always the
// owner of the parent project, never stored on the task itself.
type Task struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     Date      `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectView is a project together with its computed progress, as returned
// by the API.
type ProjectView struct {
	Project
	Progress
}
