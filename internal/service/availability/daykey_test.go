package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	ref := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"iso", "2026-01-05", "2026-01-05", true},
		{"long brazilian", "05/01/2026", "2026-01-05", true},
		{"short same year", "05/04", "2026-04-05", true},
		{"composite label", "05/01/2026 (Seg) - 09:00", "2026-01-05", true},
		{"composite short", "09/03 (Seg) - 10:00", "2026-03-09", true},
		{"padded", "  2026-03-02 ", "2026-03-02", true},
		{"empty", "", "", false},
		{"garbage", "amanhã", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DayKey(tt.raw, ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayKeyShortDateRollsOverYear(t *testing.T) {
	ref := time.Date(2026, time.December, 20, 8, 0, 0, 0, time.UTC)

	got, ok := DayKey("05/01", ref)
	assert.True(t, ok)
	assert.Equal(t, "2027-01-05", got)

	// A short date shortly behind the reference stays in the same year.
	got, ok = DayKey("01/12", ref)
	assert.True(t, ok)
	assert.Equal(t, "2026-12-01", got)
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "2026-03-02|09:00", SlotKey("2026-03-02", "09:00"))
}
