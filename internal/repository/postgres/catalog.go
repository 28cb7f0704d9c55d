package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/charllys777/appsaloes/internal/model"
)

// Catalog rows use bigserial identifiers; the EntityID wire form carries
// them as strings.

type serviceRow struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	Duration string  `db:"duration"`
	PostCare string  `db:"post_care"`
}

type workRow struct {
	ID             int64  `db:"id"`
	Title          string `db:"title"`
	ImageBeforeURL string `db:"image_before_url"`
	ImageAfterURL  string `db:"image_after_url"`
}

type testimonialRow struct {
	ID         int64  `db:"id"`
	ClientName string `db:"client_name"`
	Text       string `db:"text"`
	Rating     int    `db:"rating"`
}

func (r *catalogRepository) ListServices(ctx context.Context, ownerID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, name, price, duration, post_care
		FROM services
		WHERE professional_id = $1
		ORDER BY id
	`
	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services := make([]*model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, &model.Service{
			ID:       model.PersistedID(strconv.FormatInt(row.ID, 10)),
			Name:     row.Name,
			Price:    row.Price,
			Duration: row.Duration,
			PostCare: row.PostCare,
		})
	}
	return services, nil
}

func (r *catalogRepository) ListWorks(ctx context.Context, ownerID uuid.UUID) ([]*model.Work, error) {
	query := `
		SELECT id, title, image_before_url, image_after_url
		FROM works
		WHERE professional_id = $1
		ORDER BY created_at DESC
	`
	var rows []workRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}

	works := make([]*model.Work, 0, len(rows))
	for _, row := range rows {
		works = append(works, &model.Work{
			ID:             model.PersistedID(strconv.FormatInt(row.ID, 10)),
			Title:          row.Title,
			ImageBeforeURL: row.ImageBeforeURL,
			ImageAfterURL:  row.ImageAfterURL,
		})
	}
	return works, nil
}

func (r *catalogRepository) ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]*model.Testimonial, error) {
	query := `
		SELECT id, client_name, text, rating
		FROM testimonials
		WHERE professional_id = $1
		ORDER BY id
	`
	var rows []testimonialRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	testimonials := make([]*model.Testimonial, 0, len(rows))
	for _, row := range rows {
		testimonials = append(testimonials, &model.Testimonial{
			ID:         model.PersistedID(strconv.FormatInt(row.ID, 10)),
			ClientName: row.ClientName,
			Text:       row.Text,
			Rating:     row.Rating,
		})
	}
	return testimonials, nil
}

func (r *catalogRepository) PersistedIDs(ctx context.Context, kind model.CollectionKind, ownerID uuid.UUID) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown collection kind %q", kind)
	}
	query := fmt.Sprintf(`SELECT id FROM %s WHERE professional_id = $1 ORDER BY id`, kind)

	var raw []int64
	if err := r.db.SelectContext(ctx, &raw, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", kind, err)
	}

	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return ids, nil
}

// withTx runs fn in one transaction; any failure rolls the whole batch back
// so callers can re-fetch authoritative state before retrying.
func (r *catalogRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func deleteRows(ctx context.Context, tx *sqlx.Tx, kind model.CollectionKind, ownerID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE professional_id = $1 AND id = $2`, kind)
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("malformed %s id %q: %w", kind, raw, err)
		}
		if _, err := tx.ExecContext(ctx, query, ownerID, id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", kind, err)
		}
	}
	return nil
}

func (r *catalogRepository) ReconcileServices(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Service, deletes []string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, model.CollectionServices, ownerID, deletes); err != nil {
			return err
		}

		updateQuery := `
			UPDATE services
			SET name = $1, price = $2, duration = $3, post_care = $4, updated_at = now()
			WHERE professional_id = $5 AND id = $6
		`
		for _, s := range updates {
			id, err := strconv.ParseInt(s.ID.Value(), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed service id %q: %w", s.ID, err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, s.Name, s.Price, s.Duration, s.PostCare, ownerID, id); err != nil {
				return fmt.Errorf("failed to update service: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO services (professional_id, name, price, duration, post_care)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, s := range inserts {
			if _, err := tx.ExecContext(ctx, insertQuery, ownerID, s.Name, s.Price, s.Duration, s.PostCare); err != nil {
				return fmt.Errorf("failed to insert service: %w", err)
			}
		}
		return nil
	})
}

func (r *catalogRepository) ReconcileWorks(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Work, deletes []string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, model.CollectionWorks, ownerID, deletes); err != nil {
			return err
		}

		updateQuery := `
			UPDATE works
			SET title = $1, image_before_url = $2, image_after_url = $3, updated_at = now()
			WHERE professional_id = $4 AND id = $5
		`
		for _, w := range updates {
			id, err := strconv.ParseInt(w.ID.Value(), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed work id %q: %w", w.ID, err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, w.Title, w.ImageBeforeURL, w.ImageAfterURL, ownerID, id); err != nil {
				return fmt.Errorf("failed to update work: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO works (professional_id, title, image_before_url, image_after_url)
			VALUES ($1, $2, $3, $4)
		`
		for _, w := range inserts {
			if _, err := tx.ExecContext(ctx, insertQuery, ownerID, w.Title, w.ImageBeforeURL, w.ImageAfterURL); err != nil {
				return fmt.Errorf("failed to insert work: %w", err)
			}
		}
		return nil
	})
}

func (r *catalogRepository) ReconcileTestimonials(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Testimonial, deletes []string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, model.CollectionTestimonials, ownerID, deletes); err != nil {
			return err
		}

		updateQuery := `
			UPDATE testimonials
			SET client_name = $1, text = $2, rating = $3, updated_at = now()
			WHERE professional_id = $4 AND id = $5
		`
		for _, t := range updates {
			id, err := strconv.ParseInt(t.ID.Value(), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed testimonial id %q: %w", t.ID, err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, t.ClientName, t.Text, t.Rating, ownerID, id); err != nil {
				return fmt.Errorf("failed to update testimonial: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO testimonials (professional_id, client_name, text, rating)
			VALUES ($1, $2, $3, $4)
		`
		for _, t := range inserts {
			if _, err := tx.ExecContext(ctx, insertQuery, ownerID, t.ClientName, t.Text, t.Rating); err != nil {
				return fmt.Errorf("failed to insert testimonial: %w", err)
			}
		}
		return nil
	})
}
