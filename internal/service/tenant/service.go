package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	apperrors "github.com/charllys777/appsaloes/pkg/errors"
)

// ErrTenantNotFound means the slug (or ID) resolves to no one. Unknown
// UUIDs are treated differently, see FetchBundle.
var ErrTenantNotFound = errors.New("tenant not found")

const bundleTTL = 30 * time.Second

type Service struct {
	professionalRepo repository.ProfessionalRepository
	catalogRepo      repository.CatalogRepository
	appointmentRepo  repository.AppointmentRepository
	cache            *gocache.Cache
}

func NewService(
	professionalRepo repository.ProfessionalRepository,
	catalogRepo repository.CatalogRepository,
	appointmentRepo repository.AppointmentRepository,
) *Service {
	return &Service{
		professionalRepo: professionalRepo,
		catalogRepo:      catalogRepo,
		appointmentRepo:  appointmentRepo,
		cache:            gocache.New(bundleTTL, time.Minute),
	}
}

// FetchBundle loads everything a tenant page needs in one call. The
// identifier is either the professional's UUID or their public slug.
// A valid UUID with no profile row yet resolves to a default bundle so
// a fresh account can open its dashboard and save a profile; an unknown
// slug is a plain not-found. Inactive profiles are returned as-is, the
// caller reads Status to decide what to render.
func (s *Service) FetchBundle(ctx context.Context, idOrSlug string) (*model.TenantBundle, error) {
	if cached, ok := s.cache.Get(idOrSlug); ok {
		return cached.(*model.TenantBundle), nil
	}

	prof, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	bundle := &model.TenantBundle{Professional: prof}
	if err := s.loadCollections(ctx, bundle); err != nil {
		return nil, err
	}

	s.cache.Set(idOrSlug, bundle, bundleTTL)
	return bundle, nil
}

func (s *Service) resolve(ctx context.Context, idOrSlug string) (*model.Professional, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		prof, err := s.professionalRepo.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return defaultProfessional(id), nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load professional: %w", err)
		}
		return prof, nil
	}

	prof, err := s.professionalRepo.GetBySlug(ctx, idOrSlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("professional", ErrTenantNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load professional by slug: %w", err)
	}
	return prof, nil
}

func (s *Service) loadCollections(ctx context.Context, bundle *model.TenantBundle) error {
	ownerID := bundle.Professional.ID

	services, err := s.catalogRepo.ListServices(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load services: %w", err)
	}
	works, err := s.catalogRepo.ListWorks(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load works: %w", err)
	}
	testimonials, err := s.catalogRepo.ListTestimonials(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load testimonials: %w", err)
	}
	appointments, err := s.appointmentRepo.ListByProfessional(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}

	bundle.Services = services
	bundle.Works = works
	bundle.Testimonials = testimonials
	bundle.Appointments = appointments
	return nil
}

// Invalidate drops the cached bundle after a write. Both lookup keys
// point at the same bundle.
func (s *Service) Invalidate(prof *model.Professional) {
	s.cache.Delete(prof.ID.String())
	if prof.Slug != "" {
		s.cache.Delete(prof.Slug)
	}
}
