package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ads6495/infrunta/internal/repositories"
	"github.com/ads6495/infrunta/internal/services"
	"github.com/ads6495/infrunta/internal/utils"
)

// CatalogHandler serves the read-only content hierarchy.
type CatalogHandler struct {
	BaseHandler
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     catalog,
	}
}

// ListLanguages handles GET /api/v1/languages
func (h *CatalogHandler) ListLanguages(c *gin.Context) {
	languages, err := h.catalog.ListLanguages(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "languages retrieved",
		Data:    languages,
	})
}

// GetLanguage handles GET /api/v1/languages/:code
func (h *CatalogHandler) GetLanguage(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.RespondWithError(c, http.StatusBadRequest, "language code is required", nil)
		return
	}

	language, err := h.catalog.GetLanguage(c.Request.Context(), code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "language retrieved",
		Data:    language,
	})
}

// GetUnit handles GET /api/v1/units/:id
func (h *CatalogHandler) GetUnit(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	unit, err := h.catalog.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "unit retrieved",
		Data:    unit,
	})
}

// ListLessons handles GET /api/v1/lessons
func (h *CatalogHandler) ListLessons(c *gin.Context) {
	var filters repositories.LessonFilters

	if unitID := c.Query("unit_id"); unitID != "" {
		id, err := strconv.ParseUint(unitID, 10, 32)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "invalid unit_id", err)
			return
		}
		uintID := uint(id)
		filters.UnitID = &uintID
	}
	if premium := c.Query("premium"); premium != "" {
		value := premium == "true"
		filters.Premium = &value
	}
	if limit := c.Query("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}

	lessons, total, err := h.catalog.ListLessons(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "lessons retrieved",
		"data":    lessons,
		"total":   total,
	})
}

// GetLesson handles GET /api/v1/lessons/:id
func (h *CatalogHandler) GetLesson(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	lesson, err := h.catalog.GetLesson(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "lesson retrieved",
		Data:    lesson,
	})
}

// GetLessonExercises handles GET /api/v1/lessons/:id/exercises
func (h *CatalogHandler) GetLessonExercises(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	exercises, err := h.catalog.GetLessonExercises(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "exercises retrieved",
		Data:    exercises,
	})
}
