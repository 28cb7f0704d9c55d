package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/model"
	authsvc "github.com/charllys777/appsaloes/internal/service/auth"
	"github.com/charllys777/appsaloes/pkg/validator"
)

type Handler struct {
	service   *authsvc.Service
	validator *validator.Validator
}

func NewHandler(service *authsvc.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	account, tokens, err := h.service.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, gin.H{"account": account, "tokens": tokens})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	account, tokens, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"account": account, "tokens": tokens})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, tokens)
}

// VerifyPassword re-checks the signed-in user's password before the
// dashboard unlocks its management panel.
func (h *Handler) VerifyPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	var req model.VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	if err := h.service.VerifyPassword(c.Request.Context(), userID, req.Password); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"verified": true})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	routes := r.Group("/auth")
	{
		routes.POST("/signup", h.SignUp)
		routes.POST("/signin", h.SignIn)
		routes.POST("/refresh", h.Refresh)
		routes.POST("/verify-password", auth.Authenticate(), h.VerifyPassword)
	}
}
