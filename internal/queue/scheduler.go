package queue

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dwellify/dwellify/internal/config"
)

// Scheduler registers the periodic notification sweep with asynq. The
// cadence comes from SWEEP_CRON and defaults to once a day; the sweep
// itself is idempotent so an extra trigger is harmless.
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	redisPassword := os.Getenv(config.ENV_KEY_REDIS_PASSWORD)

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
		},
		&asynq.SchedulerOpts{},
	)

	cronspec := os.Getenv(config.ENV_KEY_SWEEP_CRON)
	if cronspec == "" {
		cronspec = "@daily"
	}

	entryID, err := scheduler.Register(cronspec, asynq.NewTask(TaskNotificationsSweep, nil))
	if err != nil {
		return nil, fmt.Errorf("register sweep schedule: %w", err)
	}

	logger.Info("Registered periodic task",
		slog.String("task", TaskNotificationsSweep),
		slog.String("cron", cronspec),
		slog.String("entry_id", entryID))

	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

// Start runs the scheduler loop; it blocks until Stop is called.
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler...")
	s.scheduler.Shutdown()
}
