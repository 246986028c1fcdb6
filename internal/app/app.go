package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"story-relay/internal/ai"
	"story-relay/internal/config"
	"story-relay/internal/generator"
	"story-relay/internal/messaging"
	"story-relay/internal/repository"
	"story-relay/internal/service"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

const (
	rabbitConnectAttempts = 5
	rabbitRetryDelay      = 2 * time.Second
)

// App - собранные из конфигурации зависимости, общие для сервера и CLI.
// После использования нужно вызвать Close.
type App struct {
	Users      *service.UserService
	Stories    *service.StoryService
	Generation *service.GenerationService

	closers []func()
	logger  *zap.Logger
}

// New собирает хранилище, репозитории, генератор, публикацию событий и сервисы.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger.Named("App")}

	backend, closeBackend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	a.closers = append(a.closers, closeBackend)

	catalog, err := generator.LoadCatalog(cfg.GenreCatalogFile)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading genre catalog: %w", err)
	}

	genOpts := []generator.Option{}
	if cfg.GeneratorSeed != 0 {
		genOpts = append(genOpts, generator.WithRand(rand.New(rand.NewSource(cfg.GeneratorSeed))))
	}
	aiCfg := cfg.AI()
	client, err := ai.NewClient(ctx, aiCfg, logger)
	switch {
	case err == nil:
		genOpts = append(genOpts, generator.WithAIClient(client, aiCfg))
		if closer, ok := client.(io.Closer); ok {
			a.closers = append(a.closers, func() { _ = closer.Close() })
		}
		a.logger.Info("AI client configured", zap.String("client_type", aiCfg.ClientType), zap.String("model", aiCfg.Model))
	case errors.Is(err, ai.ErrNotConfigured):
		a.logger.Warn("AI API key not configured, using template generation")
	default:
		a.logger.Error("Failed to create AI client, using template generation", zap.Error(err))
	}
	gen := generator.New(catalog, logger, genOpts...)

	publisher, err := a.openPublisher(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Users = service.NewUserService(repository.NewUserRepository(backend, logger), logger)
	a.Stories = service.NewStoryService(
		repository.NewStoryRepository(backend, logger),
		repository.NewSegmentRepository(backend, logger),
		repository.NewParticipantRepository(backend, logger),
		publisher,
		cfg.DefaultMaxParticipants,
		logger,
	)
	a.Generation = service.NewGenerationService(gen, a.Stories, aiCfg.ProviderName(), logger)
	return a, nil
}

func (a *App) openPublisher(cfg *config.Config) (messaging.StoryEventPublisher, error) {
	if cfg.RabbitMQURL == "" {
		a.logger.Info("RABBITMQ_URL not set, story events are discarded")
		return messaging.NoopPublisher{}, nil
	}

	conn, err := messaging.Connect(cfg.RabbitMQURL, rabbitConnectAttempts, rabbitRetryDelay, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}
	a.closers = append(a.closers, func() { _ = conn.Close() })

	publisher, err := messaging.NewRabbitMQPublisher(conn, cfg.StoryEventsQueue, a.logger)
	if err != nil {
		return nil, fmt.Errorf("creating story event publisher: %w", err)
	}
	if closer, ok := publisher.(io.Closer); ok {
		a.closers = append(a.closers, func() { _ = closer.Close() })
	}
	return publisher, nil
}

// Close освобождает ресурсы в обратном порядке.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
