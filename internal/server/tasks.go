package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/models"
)

type taskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     models.Date `json:"dueDate"`
}

// handleListTasks fetches the tasks of an owned project.
func (s *Server) handleListTasks(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), projectID, currentUserID(c))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleCreateTask inserts a new task into an owned project.
func (s *Server) handleCreateTask(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), projectID, currentUserID(c), models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleToggleTask flips a task's completion flag. Ownership resolves
// through the parent project, so a foreign task is a 404.
func (s *Server) handleToggleTask(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	task, err := s.store.ToggleTask(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleDeleteTask removes a task from an owned project.
func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}

	if err := s.store.DeleteTask(c.Request.Context(), taskID, currentUserID(c)); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
