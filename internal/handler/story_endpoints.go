package handler

import (
	"net/http"

	"story-relay/internal/models"
	"story-relay/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary Список историй
// @Tags stories
// @Produce json
// @Param status query string false "active, completed, archived или all (по умолчанию)"
// @Success 200 {object} storyListResponse
// @Router /api/stories [get]
func (h *StoryHandler) listStories(c *gin.Context) {
	stories := h.stories.ListStories(c.Request.Context(), c.Query("status"))
	c.JSON(http.StatusOK, storyListResponse{Success: true, Stories: stories, Count: len(stories)})
}

// @Summary Создание истории
// @Tags stories
// @Accept json
// @Produce json
// @Param request body service.CreateStoryInput true "История"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /api/stories [post]
func (h *StoryHandler) createStory(c *gin.Context) {
	var req service.CreateStoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	story, err := h.stories.CreateStory(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	storiesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"success": true, "story": story})
}

func (h *StoryHandler) getStory(c *gin.Context) {
	story, err := h.stories.GetStory(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "story": story})
}

func (h *StoryHandler) updateStory(c *gin.Context) {
	var req models.StoryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	story, err := h.stories.UpdateStory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "story": story})
}

func (h *StoryHandler) listSegments(c *gin.Context) {
	story, segments, err := h.stories.GetSegments(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, segmentListResponse{
		Success:    true,
		Segments:   segments,
		StoryTitle: story.Title,
		Count:      len(segments),
	})
}

func (h *StoryHandler) addSegment(c *gin.Context) {
	var req service.SegmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	segment, err := h.stories.AddSegment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	segmentsAppendedTotal.WithLabelValues("segments").Inc()
	c.JSON(http.StatusCreated, gin.H{"success": true, "segment": segment})
}

// transition возвращает обработчик именованной смены статуса.
func (h *StoryHandler) transition(t service.Transition, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		story, err := h.stories.ApplyTransition(c.Request.Context(), c.Param("id"), t)
		if err != nil {
			storyTransitionsTotal.WithLabelValues(string(t), "error").Inc()
			handleServiceError(c, err)
			return
		}
		storyTransitionsTotal.WithLabelValues(string(t), "success").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "story": story, "message": message})
	}
}
