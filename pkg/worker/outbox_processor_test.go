package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/pkg/logger"
	"github.com/charllys777/appsaloes/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("worker_test")

type recordingBroker struct {
	channels []string
	err      error
}

func (b *recordingBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.channels = append(b.channels, channel)
	return b.err
}

func (b *recordingBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *recordingBroker) Close() error { return nil }

type fakeOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[uuid.UUID]model.OutboxStatus
	errMsgs  map[uuid.UUID]string
}

func newFakeOutboxRepo(events ...*model.OutboxEvent) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:  events,
		statuses: map[uuid.UUID]model.OutboxStatus{},
		errMsgs:  map[uuid.UUID]string{},
	}
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.pending = append(r.pending, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	if limit > len(r.pending) {
		limit = len(r.pending)
	}
	return r.pending[:limit], nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	r.statuses[id] = status
	if errMsg != nil {
		r.errMsgs[id] = *errMsg
	}
	return nil
}

func event(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   json.RawMessage(`{"appointment_id":"a1"}`),
		Status:    model.OutboxStatusPending,
	}
}

func newProcessor(repo *fakeOutboxRepo, broker *recordingBroker, channel string) *OutboxProcessor {
	log := logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:  10,
		RetryLimit: 1,
		RetryDelay: time.Millisecond,
		Channel:    channel,
	}, log, testMetrics)
}

func TestProcessEventsPublishesOnPrefixedChannel(t *testing.T) {
	ev := event(model.EventAppointmentCreated)
	repo := newFakeOutboxRepo(ev)
	broker := &recordingBroker{}
	p := newProcessor(repo, broker, "appsaloes:events")

	require.NoError(t, p.processEvents(context.Background()))

	require.Len(t, broker.channels, 1)
	assert.Equal(t, "appsaloes:events:appointment_created", broker.channels[0])
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[ev.ID])
}

func TestProcessEventsBareChannelWithoutPrefix(t *testing.T) {
	ev := event(model.EventProfileDisabled)
	repo := newFakeOutboxRepo(ev)
	broker := &recordingBroker{}
	p := newProcessor(repo, broker, "")

	require.NoError(t, p.processEvents(context.Background()))

	require.Len(t, broker.channels, 1)
	assert.Equal(t, "profile_disabled", broker.channels[0])
}

func TestProcessEventsMarksFailedOnPublishError(t *testing.T) {
	ev := event(model.EventAppointmentDeleted)
	repo := newFakeOutboxRepo(ev)
	broker := &recordingBroker{err: errors.New("redis unavailable")}
	p := newProcessor(repo, broker, "appsaloes:events")

	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, model.OutboxStatusFailed, repo.statuses[ev.ID])
	assert.Contains(t, repo.errMsgs[ev.ID], "redis unavailable")
}
