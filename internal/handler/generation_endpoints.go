package handler

import (
	"net/http"
	"strconv"
	"strings"

	"story-relay/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgStoryGenerated        = "故事生成成功"
	msgStoryGeneratedNotSave = "故事生成成功（未保存到数据库）"
	msgStoryContinued        = "故事续写成功"
)

func (h *StoryHandler) aiStatus(c *gin.Context) {
	status := h.generation.AIStatus()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"ai_enabled": status.Enabled,
		"message":    status.Message,
		"provider":   status.Provider,
	})
}

// @Summary Случайные параметры истории
// @Tags generation
// @Produce json
// @Param style query string false "Жанр (по умолчанию fantasy)"
// @Router /api/generate-parameters [get]
func (h *StoryHandler) generateParameters(c *gin.Context) {
	style := c.DefaultQuery("style", "fantasy")
	params := h.generation.GenerateParameters(style)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"parameters": params,
		"style":      style,
		"genres":     h.generation.Genres(),
		"message":    "参数生成成功",
	})
}

// @Summary Генерация начала истории
// @Description Пишет начало через LLM (или шаблон) и сохраняет историю, если заданы время, место или персонаж.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body generateStoryRequest true "Параметры генерации"
// @Success 200 {object} generateStoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/generate-story [post]
func (h *StoryHandler) generateStory(c *gin.Context) {
	var req generateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	result, err := h.generation.GenerateStory(c.Request.Context(), models.StoryGenerationRequest{
		Prompt:     req.Prompt,
		Parameters: req.Parameters,
		Style:      req.Style,
		Length:     req.Length,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	storiesGeneratedTotal.WithLabelValues(result.Source, strconv.FormatBool(result.Saved)).Inc()
	message := msgStoryGenerated
	if result.SaveFailed {
		message = msgStoryGeneratedNotSave
	}
	c.JSON(http.StatusOK, generateStoryResponse{
		Success:  true,
		Story:    result.Story,
		StoryID:  result.StoryID,
		Message:  message,
		Source:   result.Source,
		Provider: result.Provider,
	})
}

// continuationSuggestions принимает параметры через query:
// time, location, character (повторяемый), action, mood.
func (h *StoryHandler) continuationSuggestions(c *gin.Context) {
	params := models.StoryParameters{
		Time:       c.Query("time"),
		Location:   c.Query("location"),
		Characters: c.QueryArray("character"),
		Action:     c.Query("action"),
		Mood:       c.Query("mood"),
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": h.generation.Suggestions(params),
	})
}

// @Summary Продолжение истории
// @Tags stories
// @Accept json
// @Produce json
// @Param request body models.StoryContinuationRequest true "Продолжение"
// @Success 200 {object} continueStoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/continue-story [post]
func (h *StoryHandler) continueStory(c *gin.Context) {
	var req models.StoryContinuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if strings.TrimSpace(req.StoryID) == "" || strings.TrimSpace(req.Content) == "" {
		abortBadRequest(c, "story_id and content are required")
		return
	}

	result, err := h.stories.ContinueStory(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	segmentsAppendedTotal.WithLabelValues("continue_story").Inc()
	h.logger.Info("Story continued",
		zap.String("story_id", result.Story.ID),
		zap.Int("order_index", result.Segment.OrderIndex),
	)
	c.JSON(http.StatusOK, continueStoryResponse{
		Success:       true,
		Segment:       result.Segment,
		Story:         result.Story,
		TotalSegments: result.TotalSegments,
		Message:       msgStoryContinued,
	})
}

func (h *StoryHandler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.stories.Stats(c.Request.Context(), c.Query("user_id")),
	})
}
