// Package api wires the gin engine: session middleware, templates, static
// assets and the route table with its auth gates.
package api

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/api/auth"
	"github.com/taskboard/taskboard/internal/api/handler"
	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/database"
	"github.com/taskboard/taskboard/web"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
}

func New(cfg *config.Config, db database.DB) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	return &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
	}, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("taskboard_session", store))
}

func (s *Server) setupTemplates() error {
	tmpl, err := template.ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.ginEngine.SetHTMLTemplate(tmpl)
	return nil
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := handler.New(s.db, auth.New(s.db), cache.NewTaskListCache(s.cfg.Cache))

	s.ginEngine.StaticFS("/static", http.FS(web.StaticFS()))

	s.ginEngine.GET("/landing", h.Landing)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", h.Login)
	s.ginEngine.GET("/admin-login", h.AdminLoginPage)
	s.ginEngine.POST("/admin-login", h.AdminLogin)
	s.ginEngine.GET("/signup", h.SignupPage)
	s.ginEngine.POST("/signup", h.Signup)
	s.ginEngine.POST("/logout", h.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())

	protected.GET("/", h.Home)
	protected.GET("/profile", h.Profile)
	protected.POST("/update-profile", h.UpdateProfile)
	protected.POST("/create-task", h.CreateTask)
	protected.POST("/delete-task", h.DeleteTasks)

	admin := s.ginEngine.Group("/")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin())

	admin.GET("/admin", h.Admin)
	admin.POST("/update-task-status", h.UpdateTaskStatus)
}

// Handler sets up templates, sessions and routes and returns the engine as
// an http.Handler. Used by Run and by the handler tests.
func (s *Server) Handler() (http.Handler, error) {
	if err := s.setupTemplates(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s.ginEngine, nil
}

func (s *Server) Run() error {
	if _, err := s.Handler(); err != nil {
		return err
	}

	return s.ginEngine.Run(s.cfg.Listen)
}
