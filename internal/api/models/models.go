// Package models holds the view models handed to the templates.
package models

// User is a user as shown on the profile and admin pages.
type User struct {
	ID   string
	Name string
	Role string
}

// Task is a task as shown on the home and admin pages. Owner is only
// populated on the admin page, where tasks are joined with their owners.
type Task struct {
	ID          string
	Description string
	Category    string
	Date        string
	Status      string
	Owner       string
}
