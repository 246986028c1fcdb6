package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"story-relay/internal/interfaces"
	"story-relay/internal/models"
	"story-relay/internal/repository"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService - регистрация и поиск пользователей.
type UserService struct {
	users  interfaces.UserRepository
	logger *zap.Logger
}

// NewUserService создаёт сервис пользователей.
func NewUserService(users interfaces.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger.Named("UserService")}
}

// Register создаёт пользователя. Email уникален без учёта регистра.
func (s *UserService) Register(ctx context.Context, input models.UserInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = repository.NormalizeEmail(input.Email)
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", models.ErrInvalidInput)
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: malformed email", models.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, models.ErrEmailAlreadyExists
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login возвращает пользователя по email или регистрирует нового.
// created = true, если пользователь был создан.
func (s *UserService) Login(ctx context.Context, input models.UserInput) (*models.User, bool, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, false, fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}
	if user, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return user, false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	user, err := s.Register(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Get ищет пользователя по ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUserNotFound
	}
	return user, err
}

// GetByEmail ищет пользователя по email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUserNotFound
	}
	return user, err
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) []models.User {
	return s.users.GetAll(ctx)
}
