package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceNames is the denormalized list of booked service names. It is
// stored as a single comma-joined text column, matching the format older
// rows already use.
type ServiceNames []string

func (n ServiceNames) Value() (driver.Value, error) {
	return strings.Join(n, ", "), nil
}

func (n *ServiceNames) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*n = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("unsupported service_names type %T", src)
	}
	if s == "" {
		*n = nil
		return nil
	}
	*n = strings.Split(s, ", ")
	return nil
}

// Appointment is one booked slot. Appointments are created by the booking
// flow and deleted by the tenant; they are never updated in place. The total
// price is not stored, it is computed on demand from current service prices.
type Appointment struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	ProfessionalID uuid.UUID    `db:"professional_id" json:"professional_id"`
	ClientName     string       `db:"client_name" json:"client_name"`
	ClientPhone    string       `db:"client_phone" json:"client_phone"`
	ServiceNames   ServiceNames `db:"service_names" json:"service_names"`
	Date           string       `db:"date" json:"date"` // canonical YYYY-MM-DD on new rows
	Weekday        string       `db:"weekday" json:"weekday"`
	StartTime      string       `db:"start_time" json:"start_time"` // "HH:MM"
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

// DateTimeLabel renders the composite form shown in the admin agenda and in
// confirmation messages, e.g. "05/01/2026 (Seg) - 09:00".
func (a *Appointment) DateTimeLabel() string {
	display := a.Date
	if t, err := time.Parse("2006-01-02", a.Date); err == nil {
		display = t.Format("02/01/2006")
	}
	return fmt.Sprintf("%s (%s) - %s", display, a.Weekday, a.StartTime)
}

// DaySlot is a derived view of one calendar date: its display date, weekday
// label, ISO date and the times still available after subtracting booked
// appointments from configured work hours. It is never persisted.
type DaySlot struct {
	Date     string   `json:"date"`      // "DD/MM"
	Weekday  string   `json:"weekday"`   // one of Weekdays
	FullDate string   `json:"full_date"` // "YYYY-MM-DD"
	Times    []string `json:"times"`
}

// MonthlyStats summarizes the current month's agenda for the admin panel.
// Revenue joins appointments to services by name against current prices.
type MonthlyStats struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}
