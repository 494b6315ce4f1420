package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanban/internal/board"
	"kanban/internal/models"
)

var (
	errNotFound        = errors.New("not found")
	errNoActiveProject = errors.New("no active project")
)

// Server exposes the board store to the web frontend over JSON.
type Server struct {
	engine    *gin.Engine
	store     *board.Store
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *board.Store, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:    router,
		store:     store,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/board", s.handleBoard)

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.PUT("/active", s.handleSetActiveProject)
			projects.DELETE("/:id", s.handleDeleteProject)
			projects.GET("/:id/tasks", s.handleListProjectTasks)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.POST("/reorder", s.handleReorderTasks)
			tasks.PUT("/:id", s.handleUpdateTask)
			tasks.PUT("/:id/status", s.handleUpdateTaskStatus)
			tasks.POST("/:id/move", s.handleMoveTask)
			tasks.DELETE("/:id", s.handleDeleteTask)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "scoped": s.store.Scoped()})
}

// parseFilter reads the ?filter= query parameter.
func (s *Server) parseFilter(c *gin.Context) (models.Filter, bool) {
	filter, err := models.ParseFilter(c.Query("filter"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return "", false
	}
	return filter, true
}

func pathID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(c.Request.Context(), level, "request failed",
		slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
