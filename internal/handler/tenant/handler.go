package tenant

import (
	"github.com/gin-gonic/gin"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/service/tenant"
)

type Handler struct {
	service *tenant.Service
}

func NewHandler(service *tenant.Service) *Handler {
	return &Handler{service: service}
}

// GetBundle serves the whole public page payload in one request. The
// parameter is either a professional UUID or their slug.
func (h *Handler) GetBundle(c *gin.Context) {
	bundle, err := h.service.FetchBundle(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, bundle)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tenants := r.Group("/tenants")
	{
		tenants.GET("/:idOrSlug", h.GetBundle)
	}
}
