package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/models"
)

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleListProjects returns all projects owned by the caller, each with
// its computed progress.
func (s *Server) handleListProjects(c *gin.Context) {
	userID := currentUserID(c)

	projects, err := s.store.ListProjects(c.Request.Context(), userID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	views := make([]models.ProjectView, 0, len(projects))
	for _, p := range projects {
		progress, err := s.store.ProjectProgress(c.Request.Context(), p.ID)
		if err != nil {
			s.respondStoreError(c, err)
			return
		}
		views = append(views, models.ProjectView{Project: p, Progress: progress})
	}
	c.JSON(http.StatusOK, views)
}

// handleCreateProject creates a new project owned by the caller.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), currentUserID(c), req.Title, req.Description)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ProjectView{Project: project, Progress: models.NewProgress(0, 0)})
}

// handleGetProject returns one owned project with up-to-date progress.
// It backs both the project read and the progress endpoint; progress is
// recomputed on every call.
func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := s.store.GetProject(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	progress, err := s.store.ProjectProgress(c.Request.Context(), project.ID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectView{Project: project, Progress: progress})
}

// handleDeleteProject removes an owned project and all of its tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteProject(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
