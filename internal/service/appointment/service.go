package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	"github.com/charllys777/appsaloes/internal/service/availability"
	"github.com/charllys777/appsaloes/pkg/logger"
)

// Service is the owner-facing appointment surface: the public side only
// ever creates bookings through the wizard.
type Service struct {
	appointmentRepo repository.AppointmentRepository
	catalogRepo     repository.CatalogRepository
	outboxRepo      repository.OutboxRepository
	logger          *logger.Logger
	now             func() time.Time
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	catalogRepo repository.CatalogRepository,
	outboxRepo repository.OutboxRepository,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		outboxRepo:      outboxRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.appointmentRepo.ListByProfessional(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Delete removes one appointment of the owner and queues the
// cancellation event. Appointments are never edited in place; a change
// is a delete plus a fresh booking.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.appointmentRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"appointment_id":  id.String(),
		"professional_id": ownerID.String(),
	})
	if err != nil {
		return nil
	}
	event := &model.OutboxEvent{
		EventType: model.EventAppointmentDeleted,
		Payload:   payload,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Warn("failed to queue appointment deleted event", "appointment_id", id.String(), "error", err.Error())
	}
	return nil
}

// MonthlyStats counts this month's bookings and estimates their
// revenue. Revenue joins the denormalized service names against the
// catalog's current prices, so renamed or deleted services contribute
// zero for those line items.
func (s *Service) MonthlyStats(ctx context.Context, ownerID uuid.UUID) (*model.MonthlyStats, error) {
	appointments, err := s.appointmentRepo.ListByProfessional(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	services, err := s.catalogRepo.ListServices(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	priceByName := make(map[string]float64, len(services))
	for _, svc := range services {
		priceByName[svc.Name] = svc.Price
	}

	now := s.now()
	stats := &model.MonthlyStats{}
	for _, apt := range appointments {
		key, ok := availability.DayKey(apt.Date, now)
		if !ok {
			continue
		}
		day, err := time.Parse("2006-01-02", key)
		if err != nil || day.Year() != now.Year() || day.Month() != now.Month() {
			continue
		}
		stats.Count++
		for _, name := range apt.ServiceNames {
			stats.Revenue += priceByName[name]
		}
	}
	return stats, nil
}
