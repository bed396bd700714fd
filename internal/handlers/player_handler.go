package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ads6495/infrunta/internal/services"
	"github.com/ads6495/infrunta/internal/utils"
)

// PlayerHandler exposes the exercise session engine over HTTP. Every
// mutation returns the resulting session snapshot so clients never have
// to interleave a write with a follow-up read.
type PlayerHandler struct {
	BaseHandler
	player services.PlayerService
}

func NewPlayerHandler(player services.PlayerService, logger utils.Logger) *PlayerHandler {
	return &PlayerHandler{
		BaseHandler: NewBaseHandler(logger),
		player:      player,
	}
}

type startSessionRequest struct {
	LessonID uint `json:"lesson_id" binding:"required"`
}

type setAnswerRequest struct {
	Answer string `json:"answer"`
}

type goToExerciseRequest struct {
	Index int `json:"index"`
}

type setAudioPlayingRequest struct {
	Playing bool `json:"playing"`
}

// StartSession handles POST /api/v1/sessions
func (h *PlayerHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	resp, err := h.player.StartSession(c.Request.Context(), req.LessonID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "session started",
		Data:    resp,
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *PlayerHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.GetSession(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "session retrieved",
		Data:    resp,
	})
}

// SetAnswer handles PUT /api/v1/sessions/:id/answer
func (h *PlayerHandler) SetAnswer(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	var req setAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	resp, err := h.player.SetAnswer(c.Request.Context(), id, req.Answer)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "answer updated",
		Data:    resp,
	})
}

// SubmitAnswer handles POST /api/v1/sessions/:id/submit
func (h *PlayerHandler) SubmitAnswer(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.SubmitAnswer(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "answer submitted",
		Data:    resp,
	})
}

// NextExercise handles POST /api/v1/sessions/:id/next
func (h *PlayerHandler) NextExercise(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.NextExercise(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "advanced",
		Data:    resp,
	})
}

// PreviousExercise handles POST /api/v1/sessions/:id/previous
func (h *PlayerHandler) PreviousExercise(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.PreviousExercise(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "moved back",
		Data:    resp,
	})
}

// GoToExercise handles POST /api/v1/sessions/:id/goto
func (h *PlayerHandler) GoToExercise(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	var req goToExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	resp, err := h.player.GoToExercise(c.Request.Context(), id, req.Index)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "jumped to exercise",
		Data:    resp,
	})
}

// RetryExercise handles POST /api/v1/sessions/:id/retry
func (h *PlayerHandler) RetryExercise(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.RetryExercise(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "exercise reset for retry",
		Data:    resp,
	})
}

// ToggleHint handles POST /api/v1/sessions/:id/hint
func (h *PlayerHandler) ToggleHint(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.ToggleHint(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "hint toggled",
		Data:    resp,
	})
}

// ToggleTranslation handles POST /api/v1/sessions/:id/translation
func (h *PlayerHandler) ToggleTranslation(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	resp, err := h.player.ToggleTranslation(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "translation toggled",
		Data:    resp,
	})
}

// SetAudioPlaying handles PUT /api/v1/sessions/:id/audio
func (h *PlayerHandler) SetAudioPlaying(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	var req setAudioPlayingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	resp, err := h.player.SetAudioPlaying(c.Request.Context(), id, req.Playing)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "audio state updated",
		Data:    resp,
	})
}

// ResetSession handles DELETE /api/v1/sessions/:id
func (h *PlayerHandler) ResetSession(c *gin.Context) {
	id, ok := parseSessionIDParam(c)
	if !ok {
		return
	}

	if err := h.player.ResetSession(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "session reset",
	})
}

// GetProgress handles GET /api/v1/progress
func (h *PlayerHandler) GetProgress(c *gin.Context) {
	snapshot := h.player.GetProgress(c.Request.Context())

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "progress retrieved",
		Data:    snapshot,
	})
}
