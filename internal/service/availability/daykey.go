package availability

import (
	"fmt"
	"strings"
	"time"
)

// Booking records arrived historically in several date shapes: ISO
// "2026-01-05", short "05/01", long "05/01/2026", and the display label
// "05/01 (Seg) - 09:00". DayKey reduces any of them to the canonical
// "YYYY-MM-DD" form so slot lookups agree regardless of origin.
func DayKey(raw string, ref time.Time) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// Strip a trailing display suffix like " (Seg) - 09:00".
	if i := strings.IndexAny(s, " ("); i > 0 {
		s = s[:i]
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), true
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format("2006-01-02"), true
	}
	if t, err := time.Parse("02/01", s); err == nil {
		// Short dates carry no year. Anchor to the reference year, but
		// a date far behind the reference belongs to the next year.
		candidate := time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ref.Location())
		if ref.Sub(candidate) > 182*24*time.Hour {
			candidate = candidate.AddDate(1, 0, 0)
		}
		return candidate.Format("2006-01-02"), true
	}
	return "", false
}

// SlotKey identifies one bookable slot of one owner's calendar.
func SlotKey(dayKey, startTime string) string {
	return fmt.Sprintf("%s|%s", dayKey, startTime)
}
