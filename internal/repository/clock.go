package repository

import (
	"time"

	"github.com/google/uuid"
)

// Clock отдаёт текущее время. Подменяется в тестах.
type Clock interface {
	Now() time.Time
}

// RealClock - системное время в UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator выдаёт уникальные идентификаторы.
type IDGenerator interface {
	New() string
}

// UUIDGenerator - случайные UUID v4.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Option настраивает репозиторий.
type Option func(*options)

type options struct {
	clock Clock
	ids   IDGenerator
}

// WithClock подменяет источник времени.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

func buildOptions(opts []Option) options {
	o := options{clock: RealClock{}, ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
