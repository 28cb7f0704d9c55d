package appointment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	"github.com/charllys777/appsaloes/pkg/logger"
)

type fakeAppointmentRepo struct {
	repository.AppointmentRepository

	appointments []*model.Appointment
	deleted      []uuid.UUID
	deleteErr    error
}

func (f *fakeAppointmentRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id, professionalID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCatalogRepo struct {
	repository.CatalogRepository

	services []*model.Service
}

func (f *fakeCatalogRepo) ListServices(ctx context.Context, ownerID uuid.UUID) ([]*model.Service, error) {
	return f.services, nil
}

type fakeOutboxRepo struct {
	repository.OutboxRepository

	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newFixture(appointments []*model.Appointment) (*Service, *fakeAppointmentRepo, *fakeOutboxRepo) {
	aptRepo := &fakeAppointmentRepo{appointments: appointments}
	catalogRepo := &fakeCatalogRepo{services: []*model.Service{
		{ID: model.PersistedID("1"), Name: "Corte", Price: 80},
		{ID: model.PersistedID("2"), Name: "Escova", Price: 50},
	}}
	outbox := &fakeOutboxRepo{}
	log := logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})

	svc := NewService(aptRepo, catalogRepo, outbox, log)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, aptRepo, outbox
}

func TestMonthlyStats(t *testing.T) {
	svc, _, _ := newFixture([]*model.Appointment{
		{Date: "2026-03-02", ServiceNames: model.ServiceNames{"Corte"}},
		{Date: "10/03/2026 (Ter) - 09:00", ServiceNames: model.ServiceNames{"Corte", "Escova"}},
		{Date: "2026-02-27", ServiceNames: model.ServiceNames{"Corte"}},
		{Date: "sem data", ServiceNames: model.ServiceNames{"Corte"}},
	})

	stats, err := svc.MonthlyStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Count, "only this month's bookings count")
	assert.InDelta(t, 210, stats.Revenue, 0.001)
}

func TestMonthlyStatsDeletedServiceContributesZero(t *testing.T) {
	svc, _, _ := newFixture([]*model.Appointment{
		{Date: "2026-03-02", ServiceNames: model.ServiceNames{"Serviço Antigo"}},
	})

	stats, err := svc.MonthlyStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.Zero(t, stats.Revenue)
}

func TestDeleteQueuesCancellationEvent(t *testing.T) {
	svc, aptRepo, outbox := newFixture(nil)
	ownerID := uuid.New()
	id := uuid.New()

	require.NoError(t, svc.Delete(context.Background(), ownerID, id))

	assert.Equal(t, []uuid.UUID{id}, aptRepo.deleted)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentDeleted, outbox.events[0].EventType)
}

func TestDeleteNotFoundPassesThrough(t *testing.T) {
	svc, aptRepo, outbox := newFixture(nil)
	aptRepo.deleteErr = repository.ErrNotFound

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, outbox.events)
}
