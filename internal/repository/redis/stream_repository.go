package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dataField - поле сообщения стрима с JSON полезной нагрузкой
const dataField = "data"

const (
	defaultBatchSize = 10
	defaultBlock     = time.Second
	retryDelay       = time.Second
)

type streamRepository struct {
	client    *redis.Client
	batchSize int64
	block     time.Duration
	logger    *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client:    client,
		batchSize: defaultBatchSize,
		block:     defaultBlock,
		logger:    logger,
	}
}

// CreateConsumerGroup создаёт consumer group, начиная с новых сообщений.
// MKSTREAM создаёт стрим, если его ещё нет; существующая группа не ошибка.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает новые сообщения группы в канал, пока не отменён ctx.
// Канал закрывается при остановке.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, r.batchSize)

	go func() {
		defer close(msgChan)

		for ctx.Err() == nil {
			messages, err := r.readBatch(ctx, stream, group, consumer)
			if err != nil {
				if ctx.Err() != nil {
					break
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				sleep(ctx, retryDelay)
				continue
			}

			for _, msg := range messages {
				select {
				case msgChan <- msg:
				case <-ctx.Done():
					return
				}
			}
		}

		r.logger.Info("Stream consumer stopped",
			zap.String("stream", stream),
			zap.String("consumer", consumer))
	}()

	return msgChan, nil
}

func (r *streamRepository) readBatch(ctx context.Context, stream, group, consumer string) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    r.batchSize,
		Block:    r.block,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []domain.StreamMessage
	for _, s := range result {
		for _, msg := range s.Messages {
			data, ok := msg.Values[dataField].(string)
			if !ok {
				r.logger.Warn("Message does not contain data field",
					zap.String("message_id", msg.ID))
				continue
			}
			messages = append(messages, domain.StreamMessage{ID: msg.ID, Data: data})
		}
	}
	return messages, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует data в JSON и добавляет в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{dataField: string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
