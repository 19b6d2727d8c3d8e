// Package handler implements the page and form handlers behind the HTTP
// routes. Task visibility and mutation are scoped here: non-admin users only
// ever see and create tasks for themselves, admins see every task joined
// with its owner.
package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/api/auth"
	"github.com/taskboard/taskboard/internal/api/models"
	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/database"
)

type Handler struct {
	db        database.DB
	auth      *auth.Authenticator
	taskCache *cache.TaskListCache
}

func New(db database.DB, authenticator *auth.Authenticator, taskCache *cache.TaskListCache) *Handler {
	return &Handler{
		db:        db,
		auth:      authenticator,
		taskCache: taskCache,
	}
}

// Home renders the logged-in user's task list. Admins are redirected to the
// admin page instead.
func (h *Handler) Home(c *gin.Context) {
	identity := auth.IdentityFromContext(c)
	if identity.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	tasks, found := h.taskCache.Get(c.Request.Context(), identity.ID)
	if !found {
		var err error
		tasks, err = h.db.ListTasksByOwner(c.Request.Context(), identity.ID)
		if err != nil {
			log.Error("failed to load tasks", "user", identity.Name, "error", err)
			c.String(http.StatusInternalServerError, "Error loading tasks")
			return
		}
		if err := h.taskCache.Set(c.Request.Context(), identity.ID, tasks); err != nil {
			log.Warn("failed to cache task list", "user", identity.Name, "error", err)
		}
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"User":  identity.Name,
		"Tasks": models.ToTasks(tasks),
	})
}

// Landing renders the public landing page.
func (h *Handler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", nil)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// AdminLoginPage renders the admin login form.
func (h *Handler) AdminLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-login.html", nil)
}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", nil)
}

// Profile renders the logged-in user's profile.
func (h *Handler) Profile(c *gin.Context) {
	identity := auth.IdentityFromContext(c)

	user, err := h.db.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		log.Error("failed to load profile", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error loading profile")
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User": models.ToUser(*user),
	})
}

// Admin renders the admin page: every task joined with its owner, plus the
// full user list.
func (h *Handler) Admin(c *gin.Context) {
	tasks, err := h.db.ListTasksWithOwners(c.Request.Context())
	if err != nil {
		log.Error("failed to load tasks for admin page", "error", err)
		c.String(http.StatusInternalServerError, "Error loading admin page")
		return
	}

	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to load users for admin page", "error", err)
		c.String(http.StatusInternalServerError, "Error loading admin page")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Tasks": models.ToTasksWithOwners(tasks),
		"Users": models.ToUsers(users),
	})
}
