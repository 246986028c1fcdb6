package repository

import (
	"context"
	"strings"

	"story-relay/internal/interfaces"
	"story-relay/internal/models"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

type userRepository struct {
	table *storage.Table[models.User]
	options
	logger *zap.Logger
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(backend storage.Backend, logger *zap.Logger, opts ...Option) interfaces.UserRepository {
	return &userRepository{
		table:   storage.NewTable[models.User](backend, storage.TableUsers, logger),
		options: buildOptions(opts),
		logger:  logger.Named("UserRepository"),
	}
}

func (r *userRepository) GetAll(ctx context.Context) []models.User {
	return r.table.Read(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.table.Read(ctx) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetByEmail ищет пользователя без учёта регистра и пробелов по краям.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	for _, u := range r.table.Read(ctx) {
		if NormalizeEmail(u.Email) == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, input models.UserInput) (*models.User, error) {
	users := r.table.Read(ctx)
	now := r.clock.Now()
	user := models.User{
		ID:        r.ids.New(),
		Username:  strings.TrimSpace(input.Username),
		Email:     NormalizeEmail(input.Email),
		AvatarURL: input.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.table.Write(ctx, append(users, user)); err != nil {
		return nil, err
	}
	r.logger.Info("User created", zap.String("user_id", user.ID))
	return &user, nil
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
