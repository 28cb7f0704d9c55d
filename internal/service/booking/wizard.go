package booking

import (
	"errors"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
)

type Step string

const (
	StepServices   Step = "services"
	StepClientInfo Step = "client_info"
	StepSchedule   Step = "schedule"
	StepConfirmed  Step = "confirmed"
)

var (
	ErrWrongStep          = errors.New("action not allowed in current step")
	ErrNoServicesSelected = errors.New("at least one service must be selected")
	ErrMissingClientInfo  = errors.New("client name and a full phone number are required")
	ErrIncompleteSchedule = errors.New("a day and a time must be chosen")
	ErrSlotUnavailable    = errors.New("the chosen time is not available")
	ErrSessionNotFound    = errors.New("booking session not found or expired")
)

// Wizard holds the in-flight state of one client's booking. It lives in
// the session store between requests and is mutated only through the
// step-guarded methods below.
type Wizard struct {
	SessionID      uuid.UUID `json:"session_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Step           Step      `json:"step"`

	ServiceIDs  []string `json:"service_ids"`
	ClientName  string   `json:"client_name"`
	ClientPhone string   `json:"client_phone"`

	Day  *model.DaySlot `json:"day,omitempty"`
	Time string         `json:"time,omitempty"`
}

func newWizard(professionalID uuid.UUID) *Wizard {
	return &Wizard{
		SessionID:      uuid.New(),
		ProfessionalID: professionalID,
		Step:           StepServices,
	}
}

func (w *Wizard) hasService(id string) bool {
	for _, s := range w.ServiceIDs {
		if s == id {
			return true
		}
	}
	return false
}

// ToggleService adds or removes a service from the selection.
func (w *Wizard) ToggleService(id string) error {
	if w.Step != StepServices {
		return ErrWrongStep
	}
	for i, s := range w.ServiceIDs {
		if s == id {
			w.ServiceIDs = append(w.ServiceIDs[:i], w.ServiceIDs[i+1:]...)
			return nil
		}
	}
	w.ServiceIDs = append(w.ServiceIDs, id)
	return nil
}

// SetClientInfo records the client's name and phone. The phone is kept
// in its masked form.
func (w *Wizard) SetClientInfo(name, phone string) error {
	if w.Step != StepClientInfo {
		return ErrWrongStep
	}
	w.ClientName = name
	w.ClientPhone = MaskPhone(phone)
	return nil
}

// SelectDay picks a day from the availability window and clears any
// previously chosen time, since times belong to a single day.
func (w *Wizard) SelectDay(day model.DaySlot) error {
	if w.Step != StepSchedule {
		return ErrWrongStep
	}
	w.Day = &day
	w.Time = ""
	return nil
}

func (w *Wizard) SelectTime(t string) error {
	if w.Step != StepSchedule {
		return ErrWrongStep
	}
	if w.Day == nil {
		return ErrIncompleteSchedule
	}
	for _, open := range w.Day.Times {
		if open == t {
			w.Time = t
			return nil
		}
	}
	return ErrSlotUnavailable
}

// Next advances one step when the current step's requirements are met.
// Leaving the schedule step happens through Submit, not Next.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepServices:
		if len(w.ServiceIDs) == 0 {
			return ErrNoServicesSelected
		}
		w.Step = StepClientInfo
	case StepClientInfo:
		if w.ClientName == "" || len(notificationDigits(w.ClientPhone)) != phoneDigits {
			return ErrMissingClientInfo
		}
		w.Step = StepSchedule
	default:
		return ErrWrongStep
	}
	return nil
}

// Back returns to the previous step. Confirmed bookings cannot be
// reopened.
func (w *Wizard) Back() error {
	switch w.Step {
	case StepClientInfo:
		w.Step = StepServices
	case StepSchedule:
		w.Step = StepClientInfo
	default:
		return ErrWrongStep
	}
	return nil
}

// Reset discards everything and starts over at the service selection.
func (w *Wizard) Reset() {
	w.Step = StepServices
	w.ServiceIDs = nil
	w.ClientName = ""
	w.ClientPhone = ""
	w.Day = nil
	w.Time = ""
}

func (w *Wizard) scheduleComplete() bool {
	return w.Day != nil && w.Time != ""
}
