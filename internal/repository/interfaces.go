package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
)

// All repository interfaces in one file
type (
	// ProfessionalRepository handles the tenant root records.
	ProfessionalRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Professional, error)
		GetBySlug(ctx context.Context, slug string) (*model.Professional, error)
		// Upsert fully replaces the mutable profile fields keyed by ID.
		// Returns ErrSlugTaken when the slug belongs to another tenant.
		Upsert(ctx context.Context, p *model.Professional) error
		List(ctx context.Context) ([]*model.Professional, error)
		ListSuperAdmins(ctx context.Context) ([]*model.Professional, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error
		SetSuperAdmin(ctx context.Context, id uuid.UUID, name string, flag bool) error
	}

	// CatalogRepository handles the editable per-tenant collections. All
	// reads and writes are scoped by the owning professional's ID.
	CatalogRepository interface {
		ListServices(ctx context.Context, ownerID uuid.UUID) ([]*model.Service, error)
		ListWorks(ctx context.Context, ownerID uuid.UUID) ([]*model.Work, error)
		ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]*model.Testimonial, error)
		// PersistedIDs returns the identifiers currently stored for one
		// collection of the owner.
		PersistedIDs(ctx context.Context, kind model.CollectionKind, ownerID uuid.UUID) ([]string, error)
		// The Reconcile methods apply one batch in a single transaction,
		// deletes first, then updates, then inserts.
		ReconcileServices(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Service, deletes []string) error
		ReconcileWorks(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Work, deletes []string) error
		ReconcileTestimonials(ctx context.Context, ownerID uuid.UUID, inserts, updates []*model.Testimonial, deletes []string) error
	}

	AppointmentRepository interface {
		// Create inserts one appointment. Returns ErrSlotTaken when the
		// (owner, date, time) slot is already booked.
		Create(ctx context.Context, apt *model.Appointment) error
		ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.Appointment, error)
		Delete(ctx context.Context, id, professionalID uuid.UUID) error
	}

	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}
)
