package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanban/internal/models"
)

type taskRequest struct {
	Text     *string `json:"text"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// handleListTasks returns the full, unfiltered task collection.
func (s *Server) handleListTasks(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"tasks": s.store.Tasks()})
}

// handleBoard returns the active project's columns under the requested filter.
func (s *Server) handleBoard(c *gin.Context) {
	filter, ok := s.parseFilter(c)
	if !ok {
		return
	}
	columns := s.store.Board(filter)
	payload := gin.H{
		"filter":  filter,
		"columns": columns,
		"counts":  columns.Counts(),
		"project": nil,
	}
	if active, ok := s.store.ActiveProject(); ok {
		payload["project"] = active
	}
	respondSuccess(c, http.StatusOK, payload)
}

// handleCreateTask adds a task to the active project's todo column.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	priority := models.DefaultPriority
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		priority = p
	}

	task, ok := s.store.AddTask(*req.Text, priority)
	if !ok {
		s.respondError(c, http.StatusConflict, errNoActiveProject)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask edits text, priority or status of a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	var upd models.TaskUpdate
	upd.Text = req.Text
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		upd.Priority = &p
	}
	if req.Status != nil {
		st, err := models.ParseStatus(*req.Status)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
		upd.Status = &st
	}

	id := pathID(c)
	if !s.store.UpdateTask(id, upd) {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("task %w", errNotFound))
		return
	}
	s.respondTask(c, id)
}

// handleUpdateTaskStatus advances a card from its column button.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	s.applyStatus(c, false)
}

// handleMoveTask applies a drag-and-drop drop onto a column.
func (s *Server) handleMoveTask(c *gin.Context) {
	s.applyStatus(c, true)
}

func (s *Server) applyStatus(c *gin.Context, drop bool) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	id := pathID(c)
	var applied bool
	if drop {
		applied = s.store.MoveTask(id, status)
	} else {
		applied = s.store.UpdateTaskStatus(id, status)
	}
	if !applied {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("task %w", errNotFound))
		return
	}
	s.respondTask(c, id)
}

// handleDeleteTask removes a task. Deleting an unknown task is not an error.
func (s *Server) handleDeleteTask(c *gin.Context) {
	s.store.DeleteTask(pathID(c))
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleReorderTasks moves one task within the collection order.
func (s *Server) handleReorderTasks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.From == nil || req.To == nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("from and to are required"))
		return
	}
	if !s.store.ReorderTasks(*req.From, *req.To) {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("index out of range"))
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": s.store.Tasks()})
}

func (s *Server) respondTask(c *gin.Context, id string) {
	task, ok := s.store.Task(id)
	if !ok {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("task %w", errNotFound))
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}
