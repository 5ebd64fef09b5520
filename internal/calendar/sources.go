package calendar

import (
	"time"

	"enscal/internal/domain/member"
)

// BirthdaySources builds one source per member with a known birth date.
// Birth dates come from individuals regardless of couple status.
func BirthdaySources(members []member.Member) []Source {
	out := make([]Source, 0, len(members))
	for _, m := range members {
		if !m.BirthDate.Valid {
			continue
		}
		out = append(out, Source{
			ID:    m.ID,
			Names: []string{m.FullName()},
			Dates: map[Kind]time.Time{KindBirth: m.BirthDate.Time},
		})
	}
	return out
}

// CoupleSources builds one source per active couple carrying whichever of the
// wedding/adoption dates are set. Retired couples do not participate.
func CoupleSources(couples []member.Couple) []Source {
	out := make([]Source, 0, len(couples))
	for _, c := range couples {
		if !c.IsActive {
			continue
		}
		dates := make(map[Kind]time.Time, 2)
		if c.WeddingDate.Valid {
			dates[KindWedding] = c.WeddingDate.Time
		}
		if c.AdoptionDate.Valid {
			dates[KindAdoption] = c.AdoptionDate.Time
		}
		if len(dates) == 0 {
			continue
		}
		out = append(out, Source{
			ID:    c.ID,
			Names: []string{c.PartnerA.FullName(), c.PartnerB.FullName()},
			Dates: dates,
		})
	}
	return out
}
