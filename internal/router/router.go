package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/charllys777/appsaloes/internal/handler"
	appointmenthandler "github.com/charllys777/appsaloes/internal/handler/appointment"
	authhandler "github.com/charllys777/appsaloes/internal/handler/auth"
	bookinghandler "github.com/charllys777/appsaloes/internal/handler/booking"
	cataloghandler "github.com/charllys777/appsaloes/internal/handler/catalog"
	profilehandler "github.com/charllys777/appsaloes/internal/handler/profile"
	superadminhandler "github.com/charllys777/appsaloes/internal/handler/superadmin"
	tenanthandler "github.com/charllys777/appsaloes/internal/handler/tenant"
	"github.com/charllys777/appsaloes/internal/middleware"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Tenant      *tenanthandler.Handler
	Booking     *bookinghandler.Handler
	Auth        *authhandler.Handler
	Profile     *profilehandler.Handler
	Catalog     *cataloghandler.Handler
	Appointment *appointmenthandler.Handler
	SuperAdmin  *superadminhandler.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	Timeout        time.Duration
	CORS           middleware.CORSConfig
	MetricsPrefix  string
}

func DefaultConfig() Config {
	return Config{
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		Timeout:        30 * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
		MetricsPrefix:  "appsaloes",
	}
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.CORS(config.CORS),
	)

	rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst, 10*time.Minute)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	health := api.Group("/health")
	{
		health.GET("/live", r.handlers.Health.LivenessCheck)
		health.GET("/ready", r.handlers.Health.ReadinessCheck)
		health.GET("/metrics", r.handlers.Health.MetricsHandler)
	}

	// Public surface: the tenant page and the booking wizard.
	r.handlers.Tenant.RegisterRoutes(api)
	r.handlers.Booking.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api, r.auth)

	// Owner and platform surfaces carry their own auth guards.
	r.handlers.Profile.RegisterRoutes(api, r.auth)
	r.handlers.Catalog.RegisterRoutes(api, r.auth)
	r.handlers.Appointment.RegisterRoutes(api, r.auth)
	r.handlers.SuperAdmin.RegisterRoutes(api, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
