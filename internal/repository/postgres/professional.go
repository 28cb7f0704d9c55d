package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
)

const professionalColumns = `
	id, name, bio, specialization, address, maps_link, whatsapp,
	profile_photo_url, bio_photo_url, logo_url, theme, status,
	COALESCE(slug, '') AS slug,
	is_super_admin, work_hours, created_at, updated_at
`

func (r *professionalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE id = $1`

	var p model.Professional
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}
	return &p, nil
}

func (r *professionalRepository) GetBySlug(ctx context.Context, slug string) (*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE slug = $1`

	var p model.Professional
	err := r.db.GetContext(ctx, &p, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get professional by slug: %w", err)
	}
	return &p, nil
}

func (r *professionalRepository) Upsert(ctx context.Context, p *model.Professional) error {
	query := `
		INSERT INTO professionals (
			id, name, bio, specialization, address, maps_link, whatsapp,
			profile_photo_url, bio_photo_url, logo_url, theme, status, slug,
			is_super_admin, work_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio,
			specialization = EXCLUDED.specialization,
			address = EXCLUDED.address,
			maps_link = EXCLUDED.maps_link,
			whatsapp = EXCLUDED.whatsapp,
			profile_photo_url = EXCLUDED.profile_photo_url,
			bio_photo_url = EXCLUDED.bio_photo_url,
			logo_url = EXCLUDED.logo_url,
			theme = EXCLUDED.theme,
			slug = EXCLUDED.slug,
			work_hours = EXCLUDED.work_hours,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Bio,
		p.Specialization,
		p.Address,
		p.MapsLink,
		p.WhatsApp,
		p.ProfilePhotoURL,
		p.BioPhotoURL,
		p.LogoURL,
		p.Theme,
		p.Status,
		p.Slug,
		p.SuperAdmin,
		p.WorkHours,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "professionals_slug_key") {
			return repository.ErrSlugTaken
		}
		return fmt.Errorf("failed to upsert professional: %w", err)
	}
	return nil
}

func (r *professionalRepository) List(ctx context.Context) ([]*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals ORDER BY created_at DESC`

	var profiles []*model.Professional
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return profiles, nil
}

func (r *professionalRepository) ListSuperAdmins(ctx context.Context) ([]*model.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM professionals WHERE is_super_admin ORDER BY created_at DESC`

	var profiles []*model.Professional
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list super admins: %w", err)
	}
	return profiles, nil
}

func (r *professionalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error {
	query := `UPDATE professionals SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetSuperAdmin repairs or creates the profile row for an allow-listed
// identity so the persisted flag matches the allow-list.
func (r *professionalRepository) SetSuperAdmin(ctx context.Context, id uuid.UUID, name string, flag bool) error {
	query := `
		INSERT INTO professionals (id, name, status, is_super_admin, work_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE SET
			is_super_admin = EXCLUDED.is_super_admin,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, id, name, model.ProfileStatusActive, flag, model.WorkHours{}.Normalize(), now)
	if err != nil {
		return fmt.Errorf("failed to set super admin flag: %w", err)
	}
	return nil
}
