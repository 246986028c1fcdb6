package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Table - именованная коллекция записей одного типа.
// Чтение никогда не возвращает ошибку: отсутствующая или повреждённая
// таблица читается как пустая.
type Table[T any] struct {
	name    string
	backend Backend
	logger  *zap.Logger
}

// NewTable создаёт таблицу поверх бэкенда.
func NewTable[T any](backend Backend, name string, logger *zap.Logger) *Table[T] {
	return &Table[T]{
		name:    name,
		backend: backend,
		logger:  logger.Named("Table").With(zap.String("table", name)),
	}
}

// Name возвращает имя таблицы.
func (t *Table[T]) Name() string {
	return t.name
}

// Read возвращает все записи в порядке хранения.
func (t *Table[T]) Read(ctx context.Context) []T {
	data, err := t.backend.Load(ctx, t.name)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			t.logger.Debug("Table not found, treating as empty")
		} else {
			t.logger.Warn("Failed to load table, treating as empty", zap.Error(err))
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		t.logger.Warn("Failed to decode table, treating as empty", zap.Error(err))
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// Write полностью заменяет содержимое таблицы.
func (t *Table[T]) Write(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", t.name, err)
	}
	if err := t.backend.Save(ctx, t.name, data); err != nil {
		t.logger.Error("Failed to save table", zap.Int("records", len(records)), zap.Error(err))
		return fmt.Errorf("failed to save table %s: %w", t.name, err)
	}
	return nil
}
