package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/handler"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/service/appointment"
	"github.com/charllys777/appsaloes/internal/service/notification"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

// appointmentView decorates an appointment with the ready-to-open
// WhatsApp link the dashboard uses to acknowledge the booking.
type appointmentView struct {
	*model.Appointment
	WhatsAppURL string `json:"whatsapp_url"`
}

func (h *Handler) ListAppointments(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	appointments, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	views := make([]appointmentView, 0, len(appointments))
	for _, apt := range appointments {
		views = append(views, appointmentView{
			Appointment: apt,
			WhatsAppURL: notification.DeepLink(apt.ClientPhone, notification.AdminGreeting(apt.ClientName)),
		})
	}
	handler.OK(c, views)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetMonthlyStats reports this month's booking count and estimated
// revenue for the finance card.
func (h *Handler) GetMonthlyStats(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authenticated"})
		return
	}

	stats, err := h.service.MonthlyStats(c.Request.Context(), ownerID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, stats)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments", auth.Authenticate())
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/stats", h.GetMonthlyStats)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}
