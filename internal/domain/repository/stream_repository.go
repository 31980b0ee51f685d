package repository

import (
	"context"

	"github.com/osm2svg/internal/domain"
)

// StreamRepository - очередь заданий на Redis Streams
type StreamRepository interface {
	// ConsumeStream отдаёт сообщения группы в канал до отмены ctx; канал закрывается при выходе
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создаёт группу и сам стрим; существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream сериализует data в JSON и добавляет в стрим полем "data"
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
