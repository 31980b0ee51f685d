package render

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/usecase/dto"
	"github.com/osm2svg/internal/worker"
	"go.uber.org/zap"
)

const publishRetryDelay = 500 * time.Millisecond

// Renderer - часть RenderUseCase, нужная воркеру
type Renderer interface {
	Render(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error)
}

// RenderWorker строит чертежи по заданиям из stream:render:request и
// публикует результат в stream:render:done. Задания выполняются по одному.
type RenderWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	renderUC     Renderer
	consumerName string
	maxRetries   int
}

// NewRenderWorker создает новый RenderWorker
func NewRenderWorker(
	streamRepo repository.StreamRepository,
	renderUC Renderer,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *RenderWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RenderWorker{
		BaseWorker:   worker.NewBaseWorker("render", consumerGroup, logger),
		streamRepo:   streamRepo,
		renderUC:     renderUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер и блокируется до остановки
func (w *RenderWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RenderWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRenderRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamRenderRequest, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно задание. Сообщение подтверждается всегда:
// ошибки рендера детерминированы, повтор дал бы тот же результат.
func (w *RenderWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	defer func() {
		if err := w.streamRepo.AckMessage(ctx, domain.StreamRenderRequest, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message", zap.Error(err))
		}
	}()

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		return
	}

	logger.Info("Processing render job",
		zap.String("job_id", event.JobID.String()),
		zap.String("name", event.Request.Name))

	result, err := w.renderUC.Render(ctx, event.Request)
	done := buildDoneEvent(event, result, err)

	if err != nil {
		logger.Warn("Render job failed",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
	}

	w.publish(ctx, done)
}

// publish публикует результат, повторяя попытку при сбое Redis
func (w *RenderWorker) publish(ctx context.Context, done domain.RenderDoneEvent) {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(publishRetryDelay):
			case <-ctx.Done():
				return
			}
		}
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamRenderDone, done); err == nil {
			return
		}
	}

	w.Logger().Error("Failed to publish done event",
		zap.String("job_id", done.JobID.String()),
		zap.Int("attempts", w.maxRetries+1),
		zap.Error(err))
}

func parseMessage(msg domain.StreamMessage) (*domain.RenderJobEvent, error) {
	var event domain.RenderJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func buildDoneEvent(event *domain.RenderJobEvent, result *dto.RenderResult, err error) domain.RenderDoneEvent {
	done := domain.RenderDoneEvent{
		JobID: event.JobID,
		Name:  event.Request.Name,
	}

	switch {
	case err == nil:
		done.Path = result.Path
		done.DrawingID = result.DrawingID
		done.Paths = result.Paths
	case stderrors.Is(err, errors.ErrNoGeometry):
		done.Empty = true
		done.Error = err.Error()
	default:
		done.Error = err.Error()
	}

	return done
}
