package handler

import (
	"net/http"

	"story-relay/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoryHandler обслуживает HTTP API историй.
type StoryHandler struct {
	users      *service.UserService
	stories    *service.StoryService
	generation *service.GenerationService
	logger     *zap.Logger
}

// NewStoryHandler создаёт обработчик API.
func NewStoryHandler(users *service.UserService, stories *service.StoryService, generation *service.GenerationService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		users:      users,
		stories:    stories,
		generation: generation,
		logger:     logger.Named("StoryHandler"),
	}
}

// RegisterRoutes регистрирует маршруты API. generationLimiter ставится на
// маршруты, которые могут обращаться к LLM или дописывать истории; nil - без ограничения.
func (h *StoryHandler) RegisterRoutes(router *gin.Engine, generationLimiter gin.HandlerFunc) {
	if generationLimiter == nil {
		generationLimiter = func(c *gin.Context) { c.Next() }
	}

	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/ai-status", h.aiStatus)
		api.GET("/generate-parameters", h.generateParameters)
		api.POST("/generate-story", generationLimiter, h.generateStory)
		api.GET("/continuation-suggestions", h.continuationSuggestions)
		api.POST("/continue-story", generationLimiter, h.continueStory)
		api.GET("/stats", h.stats)

		api.GET("/users", h.getUsers)
		api.POST("/users", h.createUser)
		api.POST("/users/login", h.login)

		stories := api.Group("/stories")
		{
			stories.GET("", h.listStories)
			stories.POST("", h.createStory)
			stories.GET("/:id", h.getStory)
			stories.PATCH("/:id", h.updateStory)
			stories.GET("/:id/segments", h.listSegments)
			stories.POST("/:id/segments", h.addSegment)
			stories.POST("/:id/complete", h.transition(service.TransitionComplete, "故事已完成"))
			stories.DELETE("/:id/complete", h.transition(service.TransitionReactivate, "故事已重新激活"))
			stories.POST("/:id/archive", h.transition(service.TransitionArchive, "故事已归档"))
			stories.DELETE("/:id/archive", h.transition(service.TransitionRestore, "故事已恢复"))
		}
	}
}

func (h *StoryHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
