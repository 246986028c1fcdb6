package storage

import (
	"context"
	"errors"
)

// Имена таблиц.
const (
	TableUsers        = "users"
	TableStories      = "stories"
	TableSegments     = "segments"
	TableParticipants = "participants"
)

// ErrTableNotFound - таблица ещё ни разу не сохранялась.
var ErrTableNotFound = errors.New("table not found")

// Backend хранит сериализованные таблицы целиком.
type Backend interface {
	Load(ctx context.Context, table string) ([]byte, error)
	Save(ctx context.Context, table string, data []byte) error
}
