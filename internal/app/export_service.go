package app

import (
	"context"
	"fmt"
	"time"

	"enscal/internal/calendar"
	"enscal/internal/domain/viewer"
)

// ExportService serializes a viewer-scoped date range to iCalendar text for
// download.
type ExportService struct {
	calendars *CalendarService
	prodID    string
	loc       *time.Location
	now       func() time.Time
}

func NewExportService(cs *CalendarService, prodID string, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{calendars: cs, prodID: prodID, loc: loc, now: time.Now}
}

// Export produces the .ics payload and a download filename for [start, end].
// Zero dates fall back to the default window: the first day of the current
// month through the last day of the month two months ahead.
func (s *ExportService) Export(ctx context.Context, v viewer.Context, start, end time.Time) (filename string, ics string, err error) {
	if !viewer.Allowed(v.Role, viewer.ModuleExport, viewer.ActionView) {
		return "", "", ErrNotPermitted
	}

	if start.IsZero() || end.IsZero() || end.Before(start) {
		now := s.now().In(s.loc)
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		end = start.AddDate(0, 3, -1) // last day of the month two months ahead
	}

	explicit, occs, _, _, err := s.calendars.rangeData(ctx, v, start, end, 0)
	if err != nil {
		return "", "", err
	}

	ics, err = calendar.ExportICS(explicit, occs, s.prodID)
	if err != nil {
		return "", "", err
	}

	filename = fmt.Sprintf("ens-calendar-%s-%s.ics", start.Format("20060102"), end.Format("20060102"))
	return filename, ics, nil
}
