package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/service/booking"
	"github.com/charllys777/appsaloes/pkg/validator"
)

type Handler struct {
	service   *booking.Service
	validator *validator.Validator
}

func NewHandler(service *booking.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

type clientInfoRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone" validate:"required"`
}

type selectDayRequest struct {
	Date string `json:"date" validate:"required"`
}

type selectTimeRequest struct {
	Time string `json:"time" validate:"required"`
}

type toggleServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

// StartSession opens a wizard for one professional's page.
func (h *Handler) StartSession(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("professionalID"))
	if err != nil {
		handler.BadRequest(c, "invalid professional ID")
		return
	}

	wizard, err := h.service.Start(c.Request.Context(), professionalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, wizard)
}

// GetAvailability serves the open booking window of one professional.
func (h *Handler) GetAvailability(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("professionalID"))
	if err != nil {
		handler.BadRequest(c, "invalid professional ID")
		return
	}

	window, err := h.service.Availability(c.Request.Context(), professionalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, window)
}

func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	wizard, err := h.service.Get(sessionID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) ToggleService(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req toggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	wizard, err := h.service.ToggleService(sessionID, req.ServiceID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) SetClientInfo(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req clientInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	wizard, err := h.service.SetClientInfo(sessionID, req.Name, req.Phone)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) SelectDay(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req selectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	wizard, err := h.service.SelectDay(c.Request.Context(), sessionID, req.Date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) SelectTime(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req selectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err.Error())
		return
	}

	wizard, err := h.service.SelectTime(sessionID, req.Time)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) Next(c *gin.Context) {
	h.transition(c, h.service.Next)
}

func (h *Handler) Back(c *gin.Context) {
	h.transition(c, h.service.Back)
}

func (h *Handler) Reset(c *gin.Context) {
	h.transition(c, h.service.Reset)
}

// AbandonSession drops a wizard without waiting for the TTL.
func (h *Handler) AbandonSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	h.service.Abandon(sessionID)
	handler.NoContent(c)
}

// Submit finalizes the booking. A slot conflict comes back as 409 with
// the wizard still in the schedule step.
func (h *Handler) Submit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	confirmation, err := h.service.Submit(c.Request.Context(), sessionID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, confirmation)
}

func (h *Handler) transition(c *gin.Context, fn func(uuid.UUID) (*booking.Wizard, error)) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	wizard, err := fn(sessionID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, wizard)
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		handler.BadRequest(c, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/booking")
	{
		bookings.GET("/:professionalID/availability", h.GetAvailability)
		bookings.POST("/:professionalID/sessions", h.StartSession)

		sessions := r.Group("/booking-sessions")
		sessions.GET("/:sessionID", h.GetSession)
		sessions.POST("/:sessionID/services", h.ToggleService)
		sessions.PUT("/:sessionID/client", h.SetClientInfo)
		sessions.PUT("/:sessionID/day", h.SelectDay)
		sessions.PUT("/:sessionID/time", h.SelectTime)
		sessions.POST("/:sessionID/next", h.Next)
		sessions.POST("/:sessionID/back", h.Back)
		sessions.POST("/:sessionID/reset", h.Reset)
		sessions.POST("/:sessionID/submit", h.Submit)
		sessions.DELETE("/:sessionID", h.AbandonSession)
	}
}
