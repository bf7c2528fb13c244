package worker

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TaskSweeper is the one service operation the worker drives.
type TaskSweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// OverdueSweeper fires the overdue sweep on a cron schedule. Each
// firing is independent: a failed sweep is logged and the next firing
// proceeds as scheduled.
type OverdueSweeper struct {
	tasks  TaskSweeper
	runner *cron.Cron
	spec   string
}

func NewOverdueSweeper(tasks TaskSweeper, cronSpec string) *OverdueSweeper {
	return &OverdueSweeper{
		tasks:  tasks,
		runner: cron.New(),
		spec:   cronSpec,
	}
}

func (s *OverdueSweeper) Start() error {
	if _, err := s.runner.AddFunc(s.spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("parsing cron expression %q: %w", s.spec, err)
	}

	s.runner.Start()
	logger.Info("Worker: overdue sweep scheduled", zap.String("cron", s.spec))
	return nil
}

// Stop waits for an in-flight sweep to finish, up to the context
// deadline.
func (s *OverdueSweeper) Stop(ctx context.Context) {
	logger.Info("Worker: stopping overdue sweep")
	stopped := s.runner.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		logger.Warn("Worker: gave up waiting for running sweep")
	}
}

// RunOnce executes a single sweep cycle.
func (s *OverdueSweeper) RunOnce(ctx context.Context) {
	start := time.Now()
	logger.Debug("Worker: sweep starting")

	promoted, err := s.tasks.SweepOverdue(ctx)
	if err != nil {
		logger.Error("Worker: sweep failed", err)
		return
	}

	logger.Info("Worker: sweep finished",
		zap.Int("promoted", promoted),
		zap.Duration("ms", time.Since(start)))
}
