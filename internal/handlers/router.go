package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ads6495/infrunta/internal/services"
	"github.com/ads6495/infrunta/internal/utils"
)

type HandlerManager struct {
	catalogHandler *CatalogHandler
	playerHandler  *PlayerHandler
}

func NewHandlerManager(
	catalog services.CatalogService,
	player services.PlayerService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		catalogHandler: NewCatalogHandler(catalog, logger),
		playerHandler:  NewPlayerHandler(player, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog routes (read-only content hierarchy)
		languages := v1.Group("/languages")
		{
			languages.GET("", hm.catalogHandler.ListLanguages)
			languages.GET("/:code", hm.catalogHandler.GetLanguage)
		}

		units := v1.Group("/units")
		{
			units.GET("/:id", hm.catalogHandler.GetUnit)
		}

		lessons := v1.Group("/lessons")
		{
			lessons.GET("", hm.catalogHandler.ListLessons)
			lessons.GET("/:id", hm.catalogHandler.GetLesson)
			lessons.GET("/:id/exercises", hm.catalogHandler.GetLessonExercises)
		}

		// Session routes (exercise player)
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.playerHandler.StartSession)
			sessions.GET("/:id", hm.playerHandler.GetSession)
			sessions.DELETE("/:id", hm.playerHandler.ResetSession)

			sessions.PUT("/:id/answer", hm.playerHandler.SetAnswer)
			sessions.POST("/:id/submit", hm.playerHandler.SubmitAnswer)
			sessions.POST("/:id/retry", hm.playerHandler.RetryExercise)

			sessions.POST("/:id/next", hm.playerHandler.NextExercise)
			sessions.POST("/:id/previous", hm.playerHandler.PreviousExercise)
			sessions.POST("/:id/goto", hm.playerHandler.GoToExercise)

			sessions.POST("/:id/hint", hm.playerHandler.ToggleHint)
			sessions.POST("/:id/translation", hm.playerHandler.ToggleTranslation)
			sessions.PUT("/:id/audio", hm.playerHandler.SetAudioPlaying)
		}

		// Learner progress
		v1.GET("/progress", hm.playerHandler.GetProgress)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "infrunta",
		})
	})
}
