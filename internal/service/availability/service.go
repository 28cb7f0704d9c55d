package availability

import (
	"time"

	"github.com/charllys777/appsaloes/internal/model"
)

// WindowDays is how far ahead clients can book.
const WindowDays = 30

// weekdayLabel maps Go weekdays onto the Monday-first labels used by
// the schedule configuration.
func weekdayLabel(d time.Weekday) string {
	return model.Weekdays[(int(d)+6)%7]
}

// Window builds the booking calendar for the next WindowDays days
// starting at now. Each day exposes the owner's configured hours for
// that weekday minus the slots already taken. Days whose weekday has no
// configured hours are closed and omitted entirely; a day where every
// configured time is booked still appears, with an empty Times slice.
func Window(now time.Time, hours model.WorkHours, appointments []*model.Appointment) []model.DaySlot {
	hours = hours.Normalize()
	taken := takenSlots(now, appointments)

	days := make([]model.DaySlot, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := now.AddDate(0, 0, i)
		label := weekdayLabel(day.Weekday())
		dayKey := day.Format("2006-01-02")

		configured := hours[label]
		if len(configured) == 0 {
			continue
		}
		times := make([]string, 0, len(configured))
		for _, t := range configured {
			if taken[SlotKey(dayKey, t)] {
				continue
			}
			times = append(times, t)
		}

		days = append(days, model.DaySlot{
			Date:     day.Format("02/01"),
			Weekday:  label,
			FullDate: dayKey,
			Times:    times,
		})
	}
	return days
}

// takenSlots indexes booked appointments by canonical slot key. Records
// whose date cannot be normalized are skipped rather than blocking the
// whole calendar.
func takenSlots(ref time.Time, appointments []*model.Appointment) map[string]bool {
	taken := make(map[string]bool, len(appointments))
	for _, apt := range appointments {
		key, ok := DayKey(apt.Date, ref)
		if !ok {
			continue
		}
		taken[SlotKey(key, apt.StartTime)] = true
	}
	return taken
}

// IsBookable reports whether a specific day and time is still open in
// the owner's calendar.
func IsBookable(now time.Time, hours model.WorkHours, appointments []*model.Appointment, dayKey, startTime string) bool {
	for _, day := range Window(now, hours, appointments) {
		if day.FullDate != dayKey {
			continue
		}
		for _, t := range day.Times {
			if t == startTime {
				return true
			}
		}
		return false
	}
	return false
}
