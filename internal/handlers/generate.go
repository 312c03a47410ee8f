package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-studio/backend/internal/generation"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
)

type GenerateHandler struct {
	flow     *generation.Service
	sessions *session.Manager
}

func NewGenerateHandler(flow *generation.Service, sessions *session.Manager) *GenerateHandler {
	return &GenerateHandler{flow: flow, sessions: sessions}
}

// GenerateImage godoc
// @Summary     Generate an image
// @Description Validates the prompt and balance, runs the simulated generation, debits one credit and persists the project
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateImageRequest true "Generation parameters"
// @Success     200 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /generate/image [post]
func (h *GenerateHandler) GenerateImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, err := h.sessions.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	outcome, err := h.flow.Generate(c.Request.Context(), user, generation.Request{
		Type:           models.GenerationTypeImage,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Model:          req.Model,
		Size:           req.Size,
		Steps:          req.Steps,
		CFGScale:       req.CFGScale,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGenerateResponse(models.GenerationTypeImage, outcome, user))
}

// GenerateVideo godoc
// @Summary     Generate a video
// @Description Same lifecycle as image generation; videos cost five credits
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateVideoRequest true "Generation parameters"
// @Success     200 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /generate/video [post]
func (h *GenerateHandler) GenerateVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, err := h.sessions.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	outcome, err := h.flow.Generate(c.Request.Context(), user, generation.Request{
		Type:     models.GenerationTypeVideo,
		Prompt:   req.Prompt,
		Duration: req.Duration,
		Style:    req.Style,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGenerateResponse(models.GenerationTypeVideo, outcome, user))
}

func newGenerateResponse(generationType string, outcome *generation.Outcome, user *models.User) models.GenerateResponse {
	return models.GenerateResponse{
		JobID:            outcome.JobID.String(),
		Type:             generationType,
		Status:           models.JobStatusCompleted,
		URLs:             outcome.URLs,
		ThumbnailURL:     outcome.ThumbnailURL,
		CreditsRemaining: user.Credits,
		Project:          models.NewProjectResponse(outcome.Project),
	}
}
