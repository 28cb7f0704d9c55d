package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusInactive ProfileStatus = "inactive"
)

type Theme string

const (
	ThemeRose   Theme = "rose"
	ThemePurple Theme = "purple"
	ThemeLuxury Theme = "luxury"
	ThemeOcean  Theme = "ocean"
	ThemePeach  Theme = "peach"
	ThemeSlate  Theme = "slate"
	ThemeForest Theme = "forest"
)

// Weekdays are the seven fixed labels used as work-hours keys, in calendar
// order starting Monday. They match the labels shown on the public page.
var Weekdays = []string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}

// WorkHours maps a weekday label to the ordered start times ("HH:MM") of
// bookable slots on that day. An empty list means the day is closed.
type WorkHours map[string][]string

// Normalize returns a copy keyed by exactly the seven weekday labels,
// dropping unknown keys and filling missing days as closed.
func (wh WorkHours) Normalize() WorkHours {
	out := make(WorkHours, len(Weekdays))
	for _, day := range Weekdays {
		if times, ok := wh[day]; ok && times != nil {
			out[day] = times
		} else {
			out[day] = []string{}
		}
	}
	return out
}

// Value implements driver.Valuer so work hours persist as jsonb.
func (wh WorkHours) Value() (driver.Value, error) {
	if wh == nil {
		return nil, nil
	}
	return json.Marshal(wh)
}

// Scan implements sql.Scanner. Malformed stored values scan as empty rather
// than failing the whole row; the availability engine treats missing days as
// closed.
func (wh *WorkHours) Scan(src interface{}) error {
	if src == nil {
		*wh = WorkHours{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported work_hours type %T", src)
	}
	if err := json.Unmarshal(raw, wh); err != nil {
		*wh = WorkHours{}
	}
	return nil
}

// Professional is the tenant root. Every other entity is owned by exactly
// one professional and is always queried and mutated scoped by its ID.
type Professional struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Bio             string        `db:"bio" json:"bio"`
	Specialization  string        `db:"specialization" json:"specialization"`
	Address         string        `db:"address" json:"address"`
	MapsLink        string        `db:"maps_link" json:"maps_link"`
	WhatsApp        string        `db:"whatsapp" json:"whatsapp"`
	ProfilePhotoURL string        `db:"profile_photo_url" json:"profile_photo_url"`
	BioPhotoURL     string        `db:"bio_photo_url" json:"bio_photo_url"`
	LogoURL         string        `db:"logo_url" json:"logo_url"`
	Theme           Theme         `db:"theme" json:"theme"`
	Status          ProfileStatus `db:"status" json:"status"`
	Slug            string        `db:"slug" json:"slug"`
	SuperAdmin      bool          `db:"is_super_admin" json:"is_super_admin"`
	WorkHours       WorkHours     `db:"work_hours" json:"work_hours"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

type UpsertProfileRequest struct {
	Name            string    `json:"name" validate:"required,max=120"`
	Bio             string    `json:"bio" validate:"max=2000"`
	Specialization  string    `json:"specialization" validate:"max=200"`
	Address         string    `json:"address" validate:"max=300"`
	MapsLink        string    `json:"maps_link" validate:"omitempty,url"`
	WhatsApp        string    `json:"whatsapp" validate:"max=20"`
	ProfilePhotoURL string    `json:"profile_photo_url" validate:"omitempty,url"`
	BioPhotoURL     string    `json:"bio_photo_url" validate:"omitempty,url"`
	LogoURL         string    `json:"logo_url" validate:"omitempty,url"`
	Theme           Theme     `json:"theme" validate:"omitempty,oneof=rose purple luxury ocean peach slate forest"`
	Slug            string    `json:"slug" validate:"omitempty,max=80"`
	WorkHours       WorkHours `json:"work_hours"`
}
