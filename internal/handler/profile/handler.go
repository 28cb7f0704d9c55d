package profile

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/service/profile"
	"github.com/charllys777/appsaloes/internal/service/tenant"
	"github.com/charllys777/appsaloes/internal/storage"
	"github.com/charllys777/appsaloes/pkg/validator"
)

type Handler struct {
	service   *profile.Service
	tenants   *tenant.Service
	uploader  *storage.Uploader
	validator *validator.Validator
}

func NewHandler(service *profile.Service, tenants *tenant.Service, uploader *storage.Uploader, v *validator.Validator) *Handler {
	return &Handler{service: service, tenants: tenants, uploader: uploader, validator: v}
}

// Upsert replaces the authenticated owner's whole profile.
func (h *Handler) Upsert(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	var req model.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	prof, err := h.service.Upsert(c.Request.Context(), ownerID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	h.tenants.Invalidate(prof)
	handler.OK(c, prof)
}

// UploadImage stores a profile or portfolio image and returns its URL.
// The multipart file is capped before the bucket ever sees it.
func (h *Handler) UploadImage(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handler.BadRequest(c, "missing file")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxUploadBytes {
		handler.Error(c, storage.ErrFileTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadBytes+1))
	if err != nil {
		handler.BadRequest(c, "failed to read file")
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), header.Filename, data)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, gin.H{"url": url})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	routes := r.Group("/profile", auth.Authenticate())
	{
		routes.PUT("", h.Upsert)
		routes.POST("/images", h.UploadImage)
	}
}
