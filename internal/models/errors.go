package models

import "errors"

// Ошибки уровня приложения.
var (
	// Хранилище
	ErrNotFound = errors.New("resource not found")

	// Пользователи
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// Истории и сегменты
	ErrStoryNotFound     = errors.New("story not found")
	ErrStoryNotActive    = errors.New("story is not active")
	ErrInvalidTransition = errors.New("story status transition is not allowed")
	ErrParticipantLimit  = errors.New("story participant limit reached")

	// Генерация
	ErrInvalidParameters = errors.New("invalid story parameters")

	// Запросы
	ErrInvalidInput = errors.New("invalid input data")
)

// Коды ошибок для клиента.
const (
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeStoryNotFound     = "STORY_NOT_FOUND"
	ErrCodeDuplicateEmail    = "DUPLICATE_EMAIL"
	ErrCodeStoryNotActive    = "STORY_NOT_ACTIVE"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeParticipantLimit  = "PARTICIPANT_LIMIT"
	ErrCodeInvalidParameters = "INVALID_PARAMETERS"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)
