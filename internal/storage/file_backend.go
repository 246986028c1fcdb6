package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend хранит каждую таблицу в файле <dir>/<table>.json.
type FileBackend struct {
	dir string
}

// NewFileBackend создаёт файловый бэкенд. Каталог создаётся при первой записи.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path возвращает путь к файлу таблицы.
func (b *FileBackend) Path(table string) string {
	return filepath.Join(b.dir, table+".json")
}

func (b *FileBackend) Load(_ context.Context, table string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(table))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, table string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir %s: %w", b.dir, err)
	}
	return os.WriteFile(b.Path(table), data, 0o644)
}
