package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/taskboard/taskboard/internal/api/auth"
	"github.com/taskboard/taskboard/internal/database"
)

const dateFormat = "2006-01-02"

// CreateTask creates a task owned by the caller. The owner is always stamped
// from the session identity, never taken from the form, so a user cannot
// create tasks on behalf of someone else.
func (h *Handler) CreateTask(c *gin.Context) {
	identity := auth.IdentityFromContext(c)

	ownerID, err := bson.ObjectIDFromHex(identity.ID)
	if err != nil {
		log.Error("invalid user id in session", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error creating task")
		return
	}

	var date time.Time
	if raw := c.PostForm("date"); raw != "" {
		if parsed, err := time.Parse(dateFormat, raw); err == nil {
			date = parsed
		} else {
			log.Warn("ignoring unparsable task date", "date", raw, "user", identity.Name)
		}
	}

	task := &database.Task{
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Date:        date,
		UserID:      ownerID,
	}
	if err := h.db.CreateTask(c.Request.Context(), task); err != nil {
		log.Error("failed to create task", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error creating task")
		return
	}

	h.invalidateTaskList(c, identity.ID)
	c.Redirect(http.StatusFound, "/")
}

// DeleteTasks deletes every task whose id appears as a key in the posted
// form (checkbox-style bodies). Deletion is sequential and non-atomic: a
// failure partway through leaves earlier deletions in place. Ids that don't
// resolve to a task are skipped.
//
// There is deliberately no check that the ids belong to the caller; any
// authenticated user can delete any task by id. See DESIGN.md.
func (h *Handler) DeleteTasks(c *gin.Context) {
	identity := auth.IdentityFromContext(c)

	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Error deleting tasks")
		return
	}

	for id := range c.Request.PostForm {
		// Look the task up first so the owner's cached list can be dropped.
		task, err := h.db.GetTaskByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				log.Warn("skipping delete of unknown task", "task", id, "user", identity.Name)
				continue
			}
			log.Error("failed to load task for deletion", "task", id, "error", err)
			c.String(http.StatusInternalServerError, "Error deleting tasks")
			return
		}

		if err := h.db.DeleteTask(c.Request.Context(), id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			log.Error("failed to delete task", "task", id, "error", err)
			c.String(http.StatusInternalServerError, "Error deleting tasks")
			return
		}
		log.Info("task deleted", "task", id, "owner", task.UserID.Hex(), "deleted_by", identity.Name)
		h.invalidateTaskList(c, task.UserID.Hex())
	}

	c.Redirect(http.StatusFound, "/")
}

// UpdateTaskStatus sets a task's status. The route is admin-gated; beyond
// that any admin may update any task.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	taskID := c.PostForm("taskId")
	status := c.PostForm("status")

	task, err := h.db.GetTaskByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.String(http.StatusNotFound, "Task not found")
			return
		}
		log.Error("failed to load task for status update", "task", taskID, "error", err)
		c.String(http.StatusInternalServerError, "Error updating task status")
		return
	}

	if err := h.db.UpdateTaskStatus(c.Request.Context(), taskID, status); err != nil {
		log.Error("failed to update task status", "task", taskID, "error", err)
		c.String(http.StatusInternalServerError, "Error updating task status")
		return
	}

	h.invalidateTaskList(c, task.UserID.Hex())
	c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) invalidateTaskList(c *gin.Context, ownerID string) {
	if err := h.taskCache.Invalidate(c.Request.Context(), ownerID); err != nil {
		log.Warn("failed to invalidate task list cache", "owner", ownerID, "error", err)
	}
}
