package handler

import (
	"errors"
	"net/http"

	"story-relay/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = models.NewErrorResponse(models.ErrCodeStoryNotFound, "Story not found")
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResp = models.NewErrorResponse(models.ErrCodeUserNotFound, "User not found")
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.NewErrorResponse(models.ErrCodeNotFound, "Resource not found")
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.NewErrorResponse(models.ErrCodeDuplicateEmail, "User with this email already exists")
	case errors.Is(err, models.ErrStoryNotActive):
		statusCode = http.StatusBadRequest
		errResp = models.NewErrorResponse(models.ErrCodeStoryNotActive, "Story is not active")
	case errors.Is(err, models.ErrParticipantLimit):
		statusCode = http.StatusBadRequest
		errResp = models.NewErrorResponse(models.ErrCodeParticipantLimit, "Story has reached maximum participants")
	case errors.Is(err, models.ErrInvalidTransition):
		statusCode = http.StatusBadRequest
		errResp = models.NewErrorResponse(models.ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, models.ErrInvalidParameters):
		statusCode = http.StatusBadRequest
		errResp = models.NewErrorResponse(models.ErrCodeInvalidParameters, "Invalid story parameters")
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.NewErrorResponse(models.ErrCodeValidation, err.Error())
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.NewErrorResponse(models.ErrCodeInternal, "An unexpected internal error occurred")
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.NewErrorResponse(models.ErrCodeBadRequest, message))
}
