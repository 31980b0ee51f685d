package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Worker - фоновый обработчик стрима. Start блокируется до Stop или отмены ctx.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// BaseWorker хранит имя, consumer group и сигнал остановки
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan закрывается при остановке воркера
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
