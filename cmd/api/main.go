package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/charllys777/appsaloes/internal/config"
	"github.com/charllys777/appsaloes/internal/email"
	"github.com/charllys777/appsaloes/internal/handler"
	appointmentHandler "github.com/charllys777/appsaloes/internal/handler/appointment"
	authHandler "github.com/charllys777/appsaloes/internal/handler/auth"
	bookingHandler "github.com/charllys777/appsaloes/internal/handler/booking"
	catalogHandler "github.com/charllys777/appsaloes/internal/handler/catalog"
	profileHandler "github.com/charllys777/appsaloes/internal/handler/profile"
	superadminHandler "github.com/charllys777/appsaloes/internal/handler/superadmin"
	tenantHandler "github.com/charllys777/appsaloes/internal/handler/tenant"
	"github.com/charllys777/appsaloes/internal/middleware"
	"github.com/charllys777/appsaloes/internal/repository/postgres"
	"github.com/charllys777/appsaloes/internal/router"
	appointmentService "github.com/charllys777/appsaloes/internal/service/appointment"
	authService "github.com/charllys777/appsaloes/internal/service/auth"
	bookingService "github.com/charllys777/appsaloes/internal/service/booking"
	profileService "github.com/charllys777/appsaloes/internal/service/profile"
	reconcileService "github.com/charllys777/appsaloes/internal/service/reconcile"
	superadminService "github.com/charllys777/appsaloes/internal/service/superadmin"
	tenantService "github.com/charllys777/appsaloes/internal/service/tenant"
	"github.com/charllys777/appsaloes/internal/storage"
	"github.com/charllys777/appsaloes/pkg/auth"
	"github.com/charllys777/appsaloes/pkg/logger"
	"github.com/charllys777/appsaloes/pkg/messaging/redis"
	"github.com/charllys777/appsaloes/pkg/metrics"
	"github.com/charllys777/appsaloes/pkg/validator"
	"github.com/charllys777/appsaloes/pkg/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	professionalRepo := postgres.NewProfessionalRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	m := metrics.NewMetrics("appsaloes")
	v := validator.New()
	jwtSvc := auth.NewJWTService(auth.Config(cfg.JWT))
	emailSvc := email.NewService(cfg.Email)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader, err := storage.NewUploader(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Services
	authSvc := authService.NewService(accountRepo, jwtSvc)
	tenantSvc := tenantService.NewService(professionalRepo, catalogRepo, appointmentRepo)
	profileSvc := profileService.NewService(professionalRepo)
	reconcileSvc := reconcileService.NewService(catalogRepo)
	bookingSvc := bookingService.NewService(professionalRepo, catalogRepo, appointmentRepo, outboxRepo, appLogger, m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, catalogRepo, outboxRepo, appLogger)
	superadminSvc := superadminService.NewService(professionalRepo, outboxRepo, authSvc, emailSvc, cfg.Superadmin, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, superadminSvc)

	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(db),
		Tenant:      tenantHandler.NewHandler(tenantSvc),
		Booking:     bookingHandler.NewHandler(bookingSvc, v),
		Auth:        authHandler.NewHandler(authSvc, v),
		Profile:     profileHandler.NewHandler(profileSvc, tenantSvc, uploader, v),
		Catalog:     catalogHandler.NewHandler(reconcileSvc, professionalRepo, tenantSvc.Invalidate),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		SuperAdmin:  superadminHandler.NewHandler(superadminSvc, v),
	}

	routerCfg := router.DefaultConfig()
	if cfg.Server.TimeoutSeconds > 0 {
		routerCfg.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	}
	r := router.NewRouter(authMiddleware, handlers, routerCfg)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Outbound notifications: outbox rows drain to the Redis broker.
	broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
		RetryLimit:   cfg.Outbox.RetryLimit,
		RetryDelay:   cfg.Outbox.RetryDelay,
		Channel:      cfg.Redis.Channel,
	}, appLogger, m)
	go outboxProcessor.Start(ctx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
