package handler

import (
	"errors"
	"net/http"

	"story-relay/internal/models"

	"github.com/gin-gonic/gin"
)

// getUsers: ?email= или ?id= ищут одного пользователя, без параметров - список.
// Отсутствие пользователя не ошибка: user = null.
func (h *StoryHandler) getUsers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		user *models.User
		err  error
	)
	switch {
	case c.Query("email") != "":
		user, err = h.users.GetByEmail(ctx, c.Query("email"))
	case c.Query("id") != "":
		user, err = h.users.Get(ctx, c.Query("id"))
	default:
		users := h.users.List(ctx)
		c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "count": len(users)})
		return
	}

	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		handleServiceError(c, err)
		return
	}
	message := "用户找到"
	if user == nil {
		message = "用户不存在"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": message})
}

// @Summary Регистрация пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UserInput true "Данные пользователя"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email уже занят"
// @Router /api/users [post]
func (h *StoryHandler) createUser(c *gin.Context) {
	var req models.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	usersRegisteredTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

func (h *StoryHandler) login(c *gin.Context) {
	var req models.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, created, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		usersRegisteredTotal.Inc()
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "user": user, "created": created})
}
