package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishAttempts = 3

type rabbitMQPublisher struct {
	mu        sync.Mutex
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQPublisher открывает канал и объявляет durable-очередь событий.
func NewRabbitMQPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (StoryEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("story event publisher: не удалось открыть канал: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("story event publisher: не удалось объявить очередь '%s': %w", queueName, err)
	}
	logger = logger.Named("StoryEventPublisher")
	logger.Info("Story event queue declared", zap.String("queue", queueName))
	return &rabbitMQPublisher{channel: ch, queueName: queueName, logger: logger}, nil
}

func (p *rabbitMQPublisher) PublishStoryEvent(ctx context.Context, event StoryEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события %s: %w", event.Type, err)
	}
	if err := p.publishMessage(ctx, body); err != nil {
		return fmt.Errorf("ошибка публикации события %s для истории %s: %w", event.Type, event.StoryID, err)
	}
	return nil
}

func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("канал RabbitMQ не инициализирован")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			AppId:        "story-relay",
		})
		if err == nil {
			return nil
		}
		p.logger.Debug("Publish attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt == publishAttempts {
			break
		}
		if waitErr := waitRetry(ctx, time.Duration(attempt)*100*time.Millisecond); waitErr != nil {
			return fmt.Errorf("%w (последняя ошибка: %v)", waitErr, err)
		}
	}
	return err
}

// waitRetry ждёт паузу между попытками или отмену контекста.
func waitRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close закрывает канал.
func (p *rabbitMQPublisher) Close() error {
	return p.channel.Close()
}

// Connect подключается к RabbitMQ с повторными попытками.
func Connect(url string, attempts int, retryDelay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < attempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Не удалось подключиться к RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		if i < attempts-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, err
}
