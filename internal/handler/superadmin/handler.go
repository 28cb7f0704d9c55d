package superadmin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/service/superadmin"
	"github.com/charllys777/appsaloes/pkg/validator"
)

type Handler struct {
	service   *superadmin.Service
	validator *validator.Validator
}

func NewHandler(service *superadmin.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

type provisionAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=120"`
}

// Check tells the dashboard whether to render the owner console. It
// always answers 200; the privilege itself fails closed.
func (h *Handler) Check(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}
	isAdmin := h.service.IsSuperAdmin(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail))
	handler.OK(c, gin.H{"is_super_admin": isAdmin})
}

func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, profiles)
}

func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, admins)
}

// ToggleStatus flips a tenant between active and inactive.
func (h *Handler) ToggleStatus(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid profile ID")
		return
	}

	status, err := h.service.ToggleStatus(c.Request.Context(), profileID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"status_now": status})
}

func (h *Handler) ProvisionAdmin(c *gin.Context) {
	var req provisionAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	account, err := h.service.ProvisionAdmin(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, account)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	admin := r.Group("/admin", auth.Authenticate())
	{
		admin.GET("/check", h.Check)

		console := admin.Group("", auth.RequireSuperAdmin())
		{
			console.GET("/profiles", h.ListProfiles)
			console.GET("/admins", h.ListAdmins)
			console.POST("/profiles/:id/toggle-status", h.ToggleStatus)
			console.POST("/admins", h.ProvisionAdmin)
		}
	}
}
