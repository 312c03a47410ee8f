package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/projects"
)

type ProjectsHandler struct {
	service *projects.Service
}

func NewProjectsHandler(service *projects.Service) *ProjectsHandler {
	return &ProjectsHandler{service: service}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns the user's projects newest-first, optionally filtered by type
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       type query string false "Filter: all, image or video" default(all)
// @Success     200 {object} models.ProjectListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	list = projects.Filter(list, c.DefaultQuery("type", "all"))

	responses := make([]models.ProjectResponse, len(list))
	for i := range list {
		responses[i] = models.NewProjectResponse(&list[i])
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

// RenameProject godoc
// @Summary     Rename a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.RenameProjectRequest true "New title"
// @Success     200 {object} map[string]string
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [patch]
func (h *ProjectsHandler) RenameProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.RenameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	if err := h.service.Rename(c.Request.Context(), userID, projectID, req.Title); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project renamed"})
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Removes the project row and any stored media for it
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
