package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
)

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, payload, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = model.OutboxStatusPending
	}

	row := r.db.QueryRowxContext(ctx, query, event.ID, event.EventType, event.Payload, event.Status)
	if err := row.Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// GetPendingEvents claims a batch by flipping rows to 'processing' in a
// single statement. Row locks from plain SELECT ... FOR UPDATE would be
// released at statement end outside a transaction, so concurrent workers
// could drain the same rows. The claim itself is the fence; rows stuck in
// 'processing' past two minutes are reclaimed from a crashed worker.
func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		UPDATE outbox_events
		SET status = $1, updated_at = now()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2
			   OR (status = $1 AND updated_at < now() - interval '2 minutes')
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_type, payload, status, error_message,
		          retry_count, created_at, processed_at, updated_at
	`
	var events []*model.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusProcessing, model.OutboxStatusPending, limit); err != nil {
		return nil, fmt.Errorf("failed to claim pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	query := `
		UPDATE outbox_events
		SET status = $1,
		    error_message = $2,
		    retry_count = CASE WHEN $1 = 'failed' THEN retry_count + 1 ELSE retry_count END,
		    processed_at = CASE WHEN $1 = 'processed' THEN now() ELSE processed_at END,
		    updated_at = now()
		WHERE id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, status, errMsg, id); err != nil {
		return fmt.Errorf("failed to update outbox event status: %w", err)
	}
	return nil
}
