package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/api/auth"
	"github.com/taskboard/taskboard/internal/database"
)

// Login handles the login form. Admins land on the admin page, everyone else
// on their task list.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	identity, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.String(http.StatusUnauthorized, "Username not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.String(http.StatusUnauthorized, "Wrong Password")
		default:
			log.Error("login failed", "user", username, "error", err)
			c.String(http.StatusInternalServerError, "Error occurred during login")
		}
		return
	}

	if err := auth.SaveIdentity(sessions.Default(c), identity); err != nil {
		log.Error("failed to save session", "user", username, "error", err)
		c.String(http.StatusInternalServerError, "Error occurred during login")
		return
	}

	if identity.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// AdminLogin handles the admin login form. Valid credentials for a non-admin
// account are rejected here; a regular user cannot enter through the admin
// door.
func (h *Handler) AdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	identity, err := h.auth.AuthenticateAdmin(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.String(http.StatusUnauthorized, "Admin Username not found")
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotAdmin):
			c.String(http.StatusUnauthorized, "Wrong Admin Password or not an admin")
		default:
			log.Error("admin login failed", "user", username, "error", err)
			c.String(http.StatusInternalServerError, "Error occurred during admin login")
		}
		return
	}

	if err := auth.SaveIdentity(sessions.Default(c), identity); err != nil {
		log.Error("failed to save session", "user", username, "error", err)
		c.String(http.StatusInternalServerError, "Error occurred during admin login")
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Signup creates a new account. The role defaults to "User" when the form
// doesn't specify one.
func (h *Handler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	role := c.PostForm("role")

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", "user", username, "error", err)
		c.String(http.StatusInternalServerError, "Error occurred during signup")
		return
	}

	user := &database.User{
		Name:     username,
		Password: hash,
		Role:     role,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.String(http.StatusConflict, "User already exists. Please choose a different username.")
			return
		}
		log.Error("failed to create user", "user", username, "error", err)
		c.String(http.StatusInternalServerError, "Error occurred during signup")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout destroys the session. Logging out of an already dead session is
// fine.
func (h *Handler) Logout(c *gin.Context) {
	if err := auth.ClearIdentity(sessions.Default(c)); err != nil {
		log.Error("failed to clear session", "error", err)
		c.String(http.StatusInternalServerError, "Error occurred during logout")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// UpdateProfile renames the logged-in user and re-hashes their password.
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity := auth.IdentityFromContext(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.db.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		log.Error("failed to load user for profile update", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error updating profile")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error updating profile")
		return
	}

	user.Name = username
	user.Password = hash
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.String(http.StatusConflict, "User already exists. Please choose a different username.")
			return
		}
		log.Error("failed to update profile", "user", identity.Name, "error", err)
		c.String(http.StatusInternalServerError, "Error updating profile")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
