package workflow

import (
	"fmt"

	"github.com/bayup/backend/internal/infrastructure/config"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
)

// Dial connects to the Temporal frontend described by cfg
func Dial(cfg config.WorkflowConfig, logger *zap.Logger) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    NewLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to temporal at %s: %w", cfg.HostPort, err)
	}
	return c, nil
}

// Worker polls the notification task queue
type Worker struct {
	w      worker.Worker
	queue  string
	logger *zap.Logger
}

// NewWorker registers the notification workflow and its activities on queue
func NewWorker(c client.Client, queue string, activities *Activities, logger *zap.Logger) *Worker {
	w := worker.New(c, queue, worker.Options{})
	w.RegisterWorkflow(NotificationWorkflow)
	w.RegisterActivity(activities)
	return &Worker{w: w, queue: queue, logger: logger}
}

// Start begins polling without blocking
func (w *Worker) Start() error {
	if err := w.w.Start(); err != nil {
		return fmt.Errorf("failed to start temporal worker: %w", err)
	}
	w.logger.Info("Temporal worker started", zap.String("task_queue", w.queue))
	return nil
}

// Stop waits for in-flight activities and stops polling
func (w *Worker) Stop() {
	w.w.Stop()
	w.logger.Info("Temporal worker stopped")
}
