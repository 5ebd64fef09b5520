package calendar

import (
	"sort"
	"time"
)

// Kind of recurring anniversary carried by a source.
type Kind string

const (
	KindBirth    Kind = "BIRTH"
	KindWedding  Kind = "WEDDING"
	KindAdoption Kind = "ADOPTION"
)

// AnniversaryKinds lists the couple-based kinds, i.e. everything but birthdays.
var AnniversaryKinds = []Kind{KindWedding, KindAdoption}

// AllKinds lists every recurring kind the expander knows about.
var AllKinds = []Kind{KindBirth, KindWedding, KindAdoption}

// Source is an entity bearing one or more anniversary dates: a person with a
// birth date, or a couple with wedding/adoption dates. Names feed title
// generation (one entry for a person, two for a couple).
type Source struct {
	ID    int64
	Names []string
	Dates map[Kind]time.Time
}

// Occurrence is one concrete-year instance of a source's anniversary.
// Computed on demand, never persisted.
type Occurrence struct {
	SourceID int64
	Kind     Kind
	Date     time.Time
	Years    int
	Title    string
	// DaysUntil is only populated by Upcoming.
	DaysUntil int
}

// OccurrenceInYear computes the observed date of an anniversary in the target
// year. A Feb 29 anniversary is clamped to Feb 28 in non-leap years. The same
// rule applies to birthdays and wedding/adoption anniversaries.
func OccurrenceInYear(original time.Time, targetYear int) time.Time {
	day := original.Day()
	month := original.Month()
	if month == time.February && day == 29 && !isLeapYear(targetYear) {
		day = 28
	}
	return time.Date(targetYear, month, day, 0, 0, 0, 0, original.Location())
}

// ElapsedYears is the occurrence year minus the original year. It is a pure
// per-year count, deliberately ignoring whether the date has passed "today".
func ElapsedYears(original time.Time, targetYear int) int {
	return targetYear - original.Year()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Expand enumerates every occurrence of the requested kinds across sources
// whose observed date falls within the inclusive [rangeStart, rangeEnd]
// window. Both endpoint years are enumerated when the range crosses a year
// boundary; the precise date test then decides membership. The result is
// sorted ascending by occurrence date, tie-broken by source id and kind.
func Expand(sources []Source, kinds []Kind, rangeStart, rangeEnd time.Time) []Occurrence {
	out := make([]Occurrence, 0)
	if rangeEnd.Before(rangeStart) {
		return out
	}

	for year := rangeStart.Year(); year <= rangeEnd.Year(); year++ {
		for _, src := range sources {
			for _, kind := range kinds {
				original, ok := src.Dates[kind]
				if !ok || original.IsZero() {
					continue
				}
				// An anniversary has no occurrences before its original date.
				if year < original.Year() {
					continue
				}
				date := OccurrenceInYear(original, year)
				if date.Before(rangeStart) || date.After(rangeEnd) {
					continue
				}
				out = append(out, Occurrence{
					SourceID: src.ID,
					Kind:     kind,
					Date:     date,
					Years:    ElapsedYears(original, year),
					Title:    occurrenceTitle(kind, src.Names),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].SourceID != out[j].SourceID {
			return out[i].SourceID < out[j].SourceID
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Upcoming expands [today, today+days] and annotates each occurrence with the
// number of days until it happens, sorting ascending by that value.
func Upcoming(sources []Source, kinds []Kind, today time.Time, days int) []Occurrence {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 0, days)

	occs := Expand(sources, kinds, start, end)
	for i := range occs {
		occs[i].DaysUntil = DaysBetween(start, occs[i].Date)
	}
	// Expand already sorts by date, which for a same-zone window is the same
	// order as DaysUntil.
	return occs
}

// DaysBetween counts civil days from a to b, immune to DST-shortened days.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
