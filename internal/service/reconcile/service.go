package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
)

// ErrInvalidRating rejects testimonial ratings outside the curated
// 3 to 5 star range before anything reaches storage.
var ErrInvalidRating = errors.New("testimonial rating must be between 3 and 5")

// Service turns a dashboard's full edited collection into the minimal
// set of row operations and applies them atomically per collection.
type Service struct {
	catalogRepo repository.CatalogRepository
}

func NewService(catalogRepo repository.CatalogRepository) *Service {
	return &Service{catalogRepo: catalogRepo}
}

func (s *Service) SyncServices(ctx context.Context, ownerID uuid.UUID, edited []*model.Service) error {
	persisted, err := s.catalogRepo.PersistedIDs(ctx, model.CollectionServices, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load persisted service ids: %w", err)
	}
	plan := BuildPlan(edited, persisted, func(svc *model.Service) model.EntityID { return svc.ID })
	if err := s.catalogRepo.ReconcileServices(ctx, ownerID, plan.Inserts, plan.Updates, plan.Deletes); err != nil {
		return fmt.Errorf("failed to sync services: %w", err)
	}
	return nil
}

func (s *Service) SyncWorks(ctx context.Context, ownerID uuid.UUID, edited []*model.Work) error {
	persisted, err := s.catalogRepo.PersistedIDs(ctx, model.CollectionWorks, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load persisted work ids: %w", err)
	}
	plan := BuildPlan(edited, persisted, func(w *model.Work) model.EntityID { return w.ID })
	if err := s.catalogRepo.ReconcileWorks(ctx, ownerID, plan.Inserts, plan.Updates, plan.Deletes); err != nil {
		return fmt.Errorf("failed to sync works: %w", err)
	}
	return nil
}

func (s *Service) SyncTestimonials(ctx context.Context, ownerID uuid.UUID, edited []*model.Testimonial) error {
	for _, t := range edited {
		if !t.ValidRating() {
			return ErrInvalidRating
		}
	}
	persisted, err := s.catalogRepo.PersistedIDs(ctx, model.CollectionTestimonials, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load persisted testimonial ids: %w", err)
	}
	plan := BuildPlan(edited, persisted, func(t *model.Testimonial) model.EntityID { return t.ID })
	if err := s.catalogRepo.ReconcileTestimonials(ctx, ownerID, plan.Inserts, plan.Updates, plan.Deletes); err != nil {
		return fmt.Errorf("failed to sync testimonials: %w", err)
	}
	return nil
}
