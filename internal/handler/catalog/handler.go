package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	"github.com/charllys777/appsaloes/internal/service/reconcile"
)

// Handler syncs the dashboard's edited collections. Each PUT carries
// the full edited list; the reconciler works out inserts, updates and
// deletes from the item IDs.
type Handler struct {
	service          *reconcile.Service
	professionalRepo repository.ProfessionalRepository
	invalidate       func(*model.Professional)
}

func NewHandler(service *reconcile.Service, professionalRepo repository.ProfessionalRepository, invalidate func(*model.Professional)) *Handler {
	return &Handler{service: service, professionalRepo: professionalRepo, invalidate: invalidate}
}

func (h *Handler) SyncServices(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	var edited []*model.Service
	if err := c.ShouldBindJSON(&edited); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SyncServices(c.Request.Context(), ownerID, edited); err != nil {
		handler.Error(c, err)
		return
	}
	h.invalidateOwner(c, ownerID)
	handler.OK(c, gin.H{"synced": len(edited)})
}

func (h *Handler) SyncWorks(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	var edited []*model.Work
	if err := c.ShouldBindJSON(&edited); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SyncWorks(c.Request.Context(), ownerID, edited); err != nil {
		handler.Error(c, err)
		return
	}
	h.invalidateOwner(c, ownerID)
	handler.OK(c, gin.H{"synced": len(edited)})
}

func (h *Handler) SyncTestimonials(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	var edited []*model.Testimonial
	if err := c.ShouldBindJSON(&edited); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SyncTestimonials(c.Request.Context(), ownerID, edited); err != nil {
		handler.Error(c, err)
		return
	}
	h.invalidateOwner(c, ownerID)
	handler.OK(c, gin.H{"synced": len(edited)})
}

func (h *Handler) invalidateOwner(c *gin.Context, ownerID uuid.UUID) {
	prof, err := h.professionalRepo.Get(c.Request.Context(), ownerID)
	if err != nil {
		return
	}
	h.invalidate(prof)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	routes := r.Group("/catalog", auth.Authenticate())
	{
		routes.PUT("/services", h.SyncServices)
		routes.PUT("/works", h.SyncWorks)
		routes.PUT("/testimonials", h.SyncTestimonials)
	}
}
