package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	"github.com/charllys777/appsaloes/internal/service/availability"
	"github.com/charllys777/appsaloes/internal/service/notification"
	apperrors "github.com/charllys777/appsaloes/pkg/errors"
	"github.com/charllys777/appsaloes/pkg/logger"
	"github.com/charllys777/appsaloes/pkg/metrics"
)

// Confirmation is what a successful Submit hands back to the client:
// the persisted appointment plus the pre-filled WhatsApp link that
// closes the loop with the professional.
type Confirmation struct {
	Appointment *model.Appointment `json:"appointment"`
	Total       float64            `json:"total"`
	WhatsAppURL string             `json:"whatsapp_url"`
}

type Service struct {
	professionalRepo repository.ProfessionalRepository
	catalogRepo      repository.CatalogRepository
	appointmentRepo  repository.AppointmentRepository
	outboxRepo       repository.OutboxRepository
	sessions         *sessionStore
	logger           *logger.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

func NewService(
	professionalRepo repository.ProfessionalRepository,
	catalogRepo repository.CatalogRepository,
	appointmentRepo repository.AppointmentRepository,
	outboxRepo repository.OutboxRepository,
	logger *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		professionalRepo: professionalRepo,
		catalogRepo:      catalogRepo,
		appointmentRepo:  appointmentRepo,
		outboxRepo:       outboxRepo,
		sessions:         newSessionStore(),
		logger:           logger,
		metrics:          m,
		now:              time.Now,
	}
}

// Start opens a new wizard session for one professional's booking page.
func (s *Service) Start(ctx context.Context, professionalID uuid.UUID) (*Wizard, error) {
	prof, err := s.professionalRepo.Get(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	if prof.Status != model.ProfileStatusActive {
		return nil, repository.ErrNotFound
	}

	w := newWizard(professionalID)
	s.sessions.put(w)
	return w, nil
}

func (s *Service) Get(sessionID uuid.UUID) (*Wizard, error) {
	return s.sessions.get(sessionID)
}

// Availability computes the open booking window for a professional.
func (s *Service) Availability(ctx context.Context, professionalID uuid.UUID) ([]model.DaySlot, error) {
	prof, err := s.professionalRepo.Get(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	appointments, err := s.appointmentRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return availability.Window(s.now(), prof.WorkHours, appointments), nil
}

// mutate loads the session, applies fn, and writes the session back
// when fn succeeds.
func (s *Service) mutate(sessionID uuid.UUID, fn func(*Wizard) error) (*Wizard, error) {
	w, err := s.sessions.get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return w, err
	}
	s.sessions.put(w)
	return w, nil
}

func (s *Service) ToggleService(sessionID uuid.UUID, serviceID string) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error {
		return w.ToggleService(serviceID)
	})
}

func (s *Service) SetClientInfo(sessionID uuid.UUID, name, phone string) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error {
		return w.SetClientInfo(name, phone)
	})
}

// SelectDay resolves dayKey against the live availability window so the
// wizard always holds current open times for the chosen day.
func (s *Service) SelectDay(ctx context.Context, sessionID uuid.UUID, dayKey string) (*Wizard, error) {
	w, err := s.sessions.get(sessionID)
	if err != nil {
		return nil, err
	}

	window, err := s.Availability(ctx, w.ProfessionalID)
	if err != nil {
		return nil, err
	}
	for _, day := range window {
		if day.FullDate == dayKey {
			if err := w.SelectDay(day); err != nil {
				return w, err
			}
			s.sessions.put(w)
			return w, nil
		}
	}
	return w, ErrSlotUnavailable
}

func (s *Service) SelectTime(sessionID uuid.UUID, t string) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error {
		return w.SelectTime(t)
	})
}

func (s *Service) Next(sessionID uuid.UUID) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error { return w.Next() })
}

func (s *Service) Back(sessionID uuid.UUID) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error { return w.Back() })
}

func (s *Service) Reset(sessionID uuid.UUID) (*Wizard, error) {
	return s.mutate(sessionID, func(w *Wizard) error {
		w.Reset()
		return nil
	})
}

// Abandon evicts a session outright, for clients leaving the page
// before the TTL reaps it. Abandoning an unknown session is a no-op.
func (s *Service) Abandon(sessionID uuid.UUID) {
	s.sessions.delete(sessionID)
}

// Submit persists the booking. The unique slot index is the final
// arbiter of conflicts: on ErrSlotTaken the wizard stays in the
// schedule step with the stale time cleared so the client can pick
// again. Success confirms the wizard and queues the outbound event.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID) (*Confirmation, error) {
	w, err := s.sessions.get(sessionID)
	if err != nil {
		return nil, err
	}
	if w.Step != StepSchedule {
		return nil, ErrWrongStep
	}
	if !w.scheduleComplete() {
		return nil, ErrIncompleteSchedule
	}

	prof, err := s.professionalRepo.Get(ctx, w.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	names, total, err := s.selectedServices(ctx, w)
	if err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		ID:             uuid.New(),
		ProfessionalID: w.ProfessionalID,
		ClientName:     w.ClientName,
		ClientPhone:    w.ClientPhone,
		ServiceNames:   names,
		Date:           w.Day.FullDate,
		Weekday:        w.Day.Weekday,
		StartTime:      w.Time,
	}

	if err := s.appointmentRepo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.BookingConflicts.Inc()
			w.Time = ""
			s.sessions.put(w)
			return nil, apperrors.Conflict("time slot already booked", err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	s.metrics.BookingsCreated.Inc()

	w.Step = StepConfirmed
	s.sessions.put(w)

	s.queueCreatedEvent(ctx, apt)

	message := notification.ConfirmationMessage(w.ClientName, apt.Date, apt.StartTime, names, total)
	return &Confirmation{
		Appointment: apt,
		Total:       total,
		WhatsAppURL: notification.DeepLink(prof.WhatsApp, message),
	}, nil
}

// selectedServices resolves the wizard's selection against the current
// catalog. Services deleted mid-session are silently dropped from the
// order rather than failing the booking.
func (s *Service) selectedServices(ctx context.Context, w *Wizard) ([]string, float64, error) {
	all, err := s.catalogRepo.ListServices(ctx, w.ProfessionalID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load services: %w", err)
	}

	var (
		names []string
		total float64
	)
	for _, svc := range all {
		if w.hasService(svc.ID.Value()) {
			names = append(names, svc.Name)
			total += svc.Price
		}
	}
	if len(names) == 0 {
		return nil, 0, ErrNoServicesSelected
	}
	return names, total, nil
}

// queueCreatedEvent is best effort. Booking success is the persisted
// appointment; a failed outbox write only loses the notification.
func (s *Service) queueCreatedEvent(ctx context.Context, apt *model.Appointment) {
	payload, err := json.Marshal(apt)
	if err != nil {
		s.logger.Error(err, "failed to marshal appointment event")
		return
	}
	event := &model.OutboxEvent{
		EventType: model.EventAppointmentCreated,
		Payload:   payload,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to queue appointment event", "appointment_id", apt.ID.String())
	}
}
