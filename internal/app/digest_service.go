package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

// DigestService produces the scheduled daily summary of upcoming events and
// anniversaries. The digest runs under an internal top-level viewer so it
// covers every team; delivery is the structured log (chat channels are out of
// scope for this service).
type DigestService struct {
	calendars  *CalendarService
	windowDays int
	logger     *logrus.Logger
}

func NewDigestService(cs *CalendarService, windowDays int, logger *logrus.Logger) *DigestService {
	return &DigestService{calendars: cs, windowDays: windowDays, logger: logger}
}

// RunDailyDigest computes the upcoming window and logs one entry per item.
// A failure on one item never aborts the digest.
func (s *DigestService) RunDailyDigest(ctx context.Context) error {
	systemViewer := viewer.Context{Role: member.RoleSuperAdmin}

	items, err := s.calendars.Upcoming(ctx, systemViewer, s.windowDays)
	if err != nil {
		return fmt.Errorf("failed to compute upcoming digest: %w", err)
	}

	s.logger.WithField("count", len(items)).Info("Daily calendar digest")
	for _, it := range items {
		entry := s.logger.WithFields(logrus.Fields{
			"id":    it.ID,
			"start": it.Start,
			"kind":  it.ExtendedProps.Kind,
		})
		if it.ExtendedProps.DaysUntil != nil {
			entry = entry.WithField("days_until", *it.ExtendedProps.DaysUntil)
		}
		entry.Info(it.Title)
	}
	return nil
}
