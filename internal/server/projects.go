package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanban/internal/board"
)

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type activeProjectRequest struct {
	ID *string `json:"id"`
}

// handleListProjects returns all projects and the active one.
func (s *Server) handleListProjects(c *gin.Context) {
	payload := gin.H{"projects": s.store.Projects(), "active": nil}
	if active, ok := s.store.ActiveProject(); ok {
		payload["active"] = active
	}
	respondSuccess(c, http.StatusOK, payload)
}

// handleCreateProject creates a new project entity.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("project name must not be empty"))
		return
	}

	project, ok := s.store.AddProject(req.Name, req.Description)
	if !ok {
		s.respondError(c, http.StatusConflict, fmt.Errorf("projects are disabled for this board"))
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleSetActiveProject switches the active project. A null id clears it.
func (s *Server) handleSetActiveProject(c *gin.Context) {
	var req activeProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ID == nil {
		s.store.SetActiveProject(nil)
		respondSuccess(c, http.StatusOK, gin.H{"active": nil})
		return
	}
	if !s.store.SelectProject(*req.ID) {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("project %w", errNotFound))
		return
	}
	active, _ := s.store.ActiveProject()
	respondSuccess(c, http.StatusOK, gin.H{"active": active})
}

// handleDeleteProject removes a project and all related tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	s.store.DeleteProject(pathID(c))
	payload := gin.H{"status": "deleted", "active": nil}
	if active, ok := s.store.ActiveProject(); ok {
		payload["active"] = active
	}
	respondSuccess(c, http.StatusOK, payload)
}

// handleListProjectTasks returns a project's tasks and their board columns.
func (s *Server) handleListProjectTasks(c *gin.Context) {
	id := pathID(c)
	if _, ok := s.store.Project(id); !ok {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("project %w", errNotFound))
		return
	}
	filter, ok := s.parseFilter(c)
	if !ok {
		return
	}

	tasks := board.FilterTasks(s.store.ProjectTasks(id), filter)
	columns := board.GroupByStatus(tasks)
	respondSuccess(c, http.StatusOK, gin.H{
		"tasks":   tasks,
		"columns": columns,
		"counts":  columns.Counts(),
	})
}
