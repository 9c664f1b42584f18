package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/domeafavour/hello-ast/internal/errors"
)

// Scheduler runs periodic tasks on a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.InternalError("failed to create scheduler", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Every registers fn to run at each interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errors.ConfigInvalid("watch.rebuild_every", err.Error())
	}
	s.logger.Info("Scheduled periodic rebuild", slog.Duration("every", interval))
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running tasks.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
