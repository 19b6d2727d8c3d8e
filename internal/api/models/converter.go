package models

import (
	"github.com/samber/lo"

	"github.com/taskboard/taskboard/internal/database"
)

const dateFormat = "2006-01-02"

// ToUser converts a database.User to its view model.
func ToUser(u database.User) User {
	return User{
		ID:   u.ID.Hex(),
		Name: u.Name,
		Role: u.Role,
	}
}

// ToUsers converts a slice of database users to view models.
func ToUsers(users []database.User) []User {
	return lo.Map(users, func(u database.User, _ int) User {
		return ToUser(u)
	})
}

// ToTask converts a database.Task to its view model.
func ToTask(t database.Task) Task {
	var date string
	if !t.Date.IsZero() {
		date = t.Date.Format(dateFormat)
	}
	return Task{
		ID:          t.ID.Hex(),
		Description: t.Description,
		Category:    t.Category,
		Date:        date,
		Status:      t.Status,
	}
}

// ToTasks converts a slice of database tasks to view models.
func ToTasks(tasks []database.Task) []Task {
	return lo.Map(tasks, func(t database.Task, _ int) Task {
		return ToTask(t)
	})
}

// ToTasksWithOwners converts joined tasks to view models, annotating each
// task with its owner's name. Tasks whose owner no longer exists keep an
// empty owner name.
func ToTasksWithOwners(tasks []database.TaskWithOwner) []Task {
	return lo.Map(tasks, func(t database.TaskWithOwner, _ int) Task {
		task := ToTask(t.Task)
		if t.Owner != nil {
			task.Owner = t.Owner.Name
		}
		return task
	})
}
