package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestRunner is the slice of the app layer the scheduler needs.
type DigestRunner interface {
	RunDailyDigest(ctx context.Context) error
}

// DigestScheduler triggers the daily calendar digest on a cron spec.
type DigestScheduler struct {
	cronEngine *cron.Cron
	digest     DigestRunner
	logger     *logrus.Logger
	cronSpec   string
}

func NewDigestScheduler(digest DigestRunner, logger *logrus.Logger, cronSpec string) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		digest:     digest,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *DigestScheduler) Start() {
	s.logger.Info("Starting digest scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.digest.RunDailyDigest(ctx); err != nil {
			s.logger.WithError(err).Error("Daily digest run failed")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add daily digest cron job")
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Digest scheduler started.")
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Digest scheduler gracefully stopped.")
}
