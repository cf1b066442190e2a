package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Behyna/epay/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 10 * time.Minute

type Scheduler struct {
	cron     *cron.Cron
	job      *BillingJob
	schedule string
	logger   *zap.Logger
}

func NewScheduler(job *BillingJob, cfg *config.Config, logger *zap.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	return &Scheduler{
		cron:     c,
		job:      job,
		schedule: cfg.Billing.Schedule,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runBilling); err != nil {
		s.logger.Error("Failed to schedule billing job", zap.Error(err), zap.String("schedule", s.schedule))
		return fmt.Errorf("invalid billing schedule %q: %w", s.schedule, err)
	}

	s.logger.Info("Scheduled billing job", zap.String("schedule", s.schedule))
	s.cron.Start()

	return nil
}

// Stop waits for a running job to finish through the returned context.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runBilling() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.job.Run(ctx); err != nil {
		s.logger.Error("Billing job failed", zap.Error(err))
	}
}
