package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, professional_id, client_name, client_phone,
			service_names, date, weekday, start_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}

	err := r.db.GetContext(ctx, &apt.CreatedAt, query,
		apt.ID, apt.ProfessionalID, apt.ClientName, apt.ClientPhone,
		apt.ServiceNames, apt.Date, apt.Weekday, apt.StartTime,
	)
	if err != nil {
		if isUniqueViolation(err, "appointments_professional_id_date_start_time_key") {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, professional_id, client_name, client_phone,
		       service_names, date, weekday, start_time, created_at
		FROM appointments
		WHERE professional_id = $1
		ORDER BY date, start_time
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, professionalID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id, professionalID uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1 AND professional_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, professionalID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
