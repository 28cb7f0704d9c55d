package booking

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
	"github.com/charllys777/appsaloes/pkg/metrics"
)

// Prometheus collectors register globally, one set per test binary.
var testMetrics = metrics.NewMetrics("booking_test")

type fakeProfessionalRepo struct {
	prof *model.Professional
	err  error
}

func (f *fakeProfessionalRepo) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prof, nil
}
func (f *fakeProfessionalRepo) GetBySlug(ctx context.Context, slug string) (*model.Professional, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProfessionalRepo) Upsert(ctx context.Context, p *model.Professional) error { return nil }
func (f *fakeProfessionalRepo) List(ctx context.Context) ([]*model.Professional, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) ListSuperAdmins(ctx context.Context) ([]*model.Professional, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error {
	return nil
}
func (f *fakeProfessionalRepo) SetSuperAdmin(ctx context.Context, id uuid.UUID, name string, flag bool) error {
	return nil
}

type fakeCatalogRepo struct {
	services []*model.Service
}

func (f *fakeCatalogRepo) ListServices(ctx context.Context, ownerID uuid.UUID) ([]*model.Service, error) {
	return f.services, nil
}
func (f *fakeCatalogRepo) ListWorks(ctx context.Context, ownerID uuid.UUID) ([]*model.Work, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]*model.Testimonial, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) PersistedIDs(ctx context.Context, kind model.CollectionKind, ownerID uuid.UUID) ([]string, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ReconcileServices(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Service, deletes []string) error {
	return nil
}
func (f *fakeCatalogRepo) ReconcileWorks(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Work, deletes []string) error {
	return nil
}
func (f *fakeCatalogRepo) ReconcileTestimonials(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Testimonial, deletes []string) error {
	return nil
}

type fakeAppointmentRepo struct {
	created   []*model.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, apt)
	return nil
}
func (f *fakeAppointmentRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.Appointment, error) {
	return f.created, nil
}
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id, professionalID uuid.UUID) error {
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return nil
}

type fixture struct {
	svc          *Service
	professional *fakeProfessionalRepo
	catalog      *fakeCatalogRepo
	appointments *fakeAppointmentRepo
	outbox       *fakeOutboxRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	prof := &model.Professional{
		ID:        uuid.New(),
		Name:      "Ana Clara",
		WhatsApp:  "(11) 98765-4321",
		Status:    model.ProfileStatusActive,
		WorkHours: model.WorkHours{"Seg": {"09:00", "10:00"}},
	}
	f := &fixture{
		professional: &fakeProfessionalRepo{prof: prof},
		catalog: &fakeCatalogRepo{services: []*model.Service{
			{ID: model.PersistedID("1"), Name: "Corte", Price: 80},
			{ID: model.PersistedID("2"), Name: "Escova", Price: 50.5},
		}},
		appointments: &fakeAppointmentRepo{},
		outbox:       &fakeOutboxRepo{},
	}

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	f.svc = NewService(f.professional, f.catalog, f.appointments, f.outbox, log, testMetrics)
	// March 2, 2026 is a Monday.
	f.svc.now = func() time.Time {
		return time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	}
	return f
}

// walkToSchedule drives a fresh session up to the schedule step with one
// service, client info and a selected slot.
func walkToSchedule(t *testing.T, f *fixture) *Wizard {
	t.Helper()
	ctx := context.Background()

	w, err := f.svc.Start(ctx, f.professional.prof.ID)
	require.NoError(t, err)

	_, err = f.svc.ToggleService(w.SessionID, "1")
	require.NoError(t, err)
	_, err = f.svc.ToggleService(w.SessionID, "2")
	require.NoError(t, err)
	_, err = f.svc.Next(w.SessionID)
	require.NoError(t, err)
	_, err = f.svc.SetClientInfo(w.SessionID, "Maria", "11987654321")
	require.NoError(t, err)
	_, err = f.svc.Next(w.SessionID)
	require.NoError(t, err)
	_, err = f.svc.SelectDay(ctx, w.SessionID, "2026-03-02")
	require.NoError(t, err)
	w, err = f.svc.SelectTime(w.SessionID, "09:00")
	require.NoError(t, err)
	return w
}

func TestStartRejectsInactiveProfile(t *testing.T) {
	f := newFixture(t)
	f.professional.prof.Status = model.ProfileStatusInactive

	_, err := f.svc.Start(context.Background(), f.professional.prof.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAbandonRemovesSession(t *testing.T) {
	f := newFixture(t)

	w, err := f.svc.Start(context.Background(), f.professional.prof.ID)
	require.NoError(t, err)

	f.svc.Abandon(w.SessionID)

	_, err = f.svc.Get(w.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// abandoning twice is harmless
	f.svc.Abandon(w.SessionID)
}

func TestSelectDayRejectsClosedDay(t *testing.T) {
	f := newFixture(t)
	w := walkToSchedule(t, f)

	// March 3 is a Tuesday with no configured hours.
	_, err := f.svc.SelectDay(context.Background(), w.SessionID, "2026-03-03")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestSubmitBooksAndConfirms(t *testing.T) {
	f := newFixture(t)
	w := walkToSchedule(t, f)
	ctx := context.Background()

	conf, err := f.svc.Submit(ctx, w.SessionID)
	require.NoError(t, err)

	require.Len(t, f.appointments.created, 1)
	apt := f.appointments.created[0]
	assert.Equal(t, "2026-03-02", apt.Date)
	assert.Equal(t, "Seg", apt.Weekday)
	assert.Equal(t, "09:00", apt.StartTime)
	assert.Equal(t, "Maria", apt.ClientName)
	assert.Equal(t, "(11) 98765-4321", apt.ClientPhone)
	assert.Equal(t, model.ServiceNames{"Corte", "Escova"}, apt.ServiceNames)

	assert.InDelta(t, 130.5, conf.Total, 0.001)
	assert.Contains(t, conf.WhatsAppURL, "https://wa.me/5511987654321?text=")

	w, err = f.svc.Get(w.SessionID)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, w.Step)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, f.outbox.events[0].EventType)
}

func TestSubmitConflictStaysInSchedule(t *testing.T) {
	f := newFixture(t)
	w := walkToSchedule(t, f)
	f.appointments.createErr = repository.ErrSlotTaken

	_, err := f.svc.Submit(context.Background(), w.SessionID)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	w, getErr := f.svc.Get(w.SessionID)
	require.NoError(t, getErr)
	assert.Equal(t, StepSchedule, w.Step)
	assert.Empty(t, w.Time, "stale time cleared so the client picks again")
	assert.NotNil(t, w.Day)
	assert.Empty(t, f.outbox.events)
}

func TestSubmitDropsDeletedServices(t *testing.T) {
	f := newFixture(t)
	w := walkToSchedule(t, f)

	// "Escova" was removed from the catalog mid-session.
	f.catalog.services = f.catalog.services[:1]

	conf, err := f.svc.Submit(context.Background(), w.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.ServiceNames{"Corte"}, f.appointments.created[0].ServiceNames)
	assert.InDelta(t, 80, conf.Total, 0.001)
}

func TestSubmitRequiresCompleteSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.svc.Start(ctx, f.professional.prof.ID)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, w.SessionID)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestAvailabilityReflectsBookings(t *testing.T) {
	f := newFixture(t)
	w := walkToSchedule(t, f)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, w.SessionID)
	require.NoError(t, err)

	window, err := f.svc.Availability(ctx, f.professional.prof.ID)
	require.NoError(t, err)
	require.NotEmpty(t, window)
	assert.Equal(t, []string{"10:00"}, window[0].Times)
}
