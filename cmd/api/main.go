package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coachhub/coachhub-api/config"
	"github.com/coachhub/coachhub-api/internal/booking"
	"github.com/coachhub/coachhub-api/internal/cache"
	"github.com/coachhub/coachhub-api/internal/handlers"
	"github.com/coachhub/coachhub-api/internal/middleware"
	"github.com/coachhub/coachhub-api/internal/pending"
	"github.com/coachhub/coachhub-api/internal/repository"
	"github.com/coachhub/coachhub-api/internal/services"
	"github.com/coachhub/coachhub-api/pkg/db"
	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/jwt"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/coachhub/coachhub-api/pkg/payment"
	"github.com/coachhub/coachhub-api/pkg/profiling"
	"github.com/coachhub/coachhub-api/pkg/retry"
	"github.com/coachhub/coachhub-api/pkg/storage"
	"github.com/coachhub/coachhub-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	defaultBodyLimit = 100 * 1024
	// multipart profile writes carry the resume plus form fields
	profileBodyLimit = storage.MaxResumeSize + 256*1024
)

type routeHandlers struct {
	health         *handlers.HealthHandler
	profiles       *handlers.MentorProfileHandler
	slots          *handlers.SlotHandler
	bookings       *handlers.BookingHandler
	sessionBooking *handlers.SessionBookingHandler
}

// registerAPIRoutes registers the versioned API under /api/v1
func registerAPIRoutes(ctx context.Context, router *gin.Engine, cfg *config.Config, tokenManager *jwt.TokenManager, h routeHandlers) {
	generalRateLimiter := middleware.NewRateLimiter(ctx, 100, 200) // 100 req/sec, burst of 200
	bookingRateLimiter := middleware.NewRateLimiter(ctx, 5, 10)    // 5 req/sec, burst of 10
	profileRateLimiter := middleware.NewRateLimiter(ctx, 10, 20)   // 10 req/sec, burst of 20

	session := middleware.UserSessionMiddleware(tokenManager, middleware.SessionCookie{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodySizeLimitMiddleware(defaultBodyLimit, map[string]int64{
		"/api/v1/mentor/profile": profileBodyLimit,
	}))

	// Public reads
	v1.GET("/slots", generalRateLimiter.Middleware(), h.slots.ListSlots)
	v1.GET("/mentor/slots/mentor/:mentorId", generalRateLimiter.Middleware(), h.slots.ListMentorSlots)
	v1.GET("/mentor/profile/:user_id", generalRateLimiter.Middleware(), h.profiles.GetProfile)

	// Session routes
	authed := v1.Group("", session)
	authed.POST("/mentor/profile", profileRateLimiter.Middleware(), h.profiles.SaveProfile)
	authed.POST("/mentor/slots", profileRateLimiter.Middleware(), h.slots.CreateSlot)

	authed.POST("/bookings", bookingRateLimiter.Middleware(), h.bookings.CreateBooking)
	authed.GET("/bookings/pending", generalRateLimiter.Middleware(), h.bookings.GetPendingBooking)
	authed.DELETE("/bookings/pending", generalRateLimiter.Middleware(), h.bookings.ClearPendingBooking)
	authed.GET("/bookings/:id", generalRateLimiter.Middleware(), h.bookings.GetBooking)
	authed.POST("/sessions/book", bookingRateLimiter.Middleware(), h.sessionBooking.BookSession)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), h.health.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CoachHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// The database may still be starting next to us (docker compose); retry the first connect.
	pool, err := retry.DoWithResult(appCtx, retry.DefaultConfig(), "postgres.connect", func() (*pgxpool.Pool, error) {
		return db.NewPool(appCtx, db.PoolConfig{
			URL:        cfg.Database.URL,
			MaxConns:   cfg.Database.MaxConns,
			MinConns:   cfg.Database.MinConns,
			CACertPath: cfg.Database.CACertPath,
		})
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: migrations run separately via cmd/migrate

	markers, closeMarkers := newPendingStore(cfg)
	defer closeMarkers()

	var uploader storage.Uploader
	if cfg.StorageEnabled() {
		uploader = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
	} else {
		logger.Warn("Object storage not configured: resume uploads disabled")
	}

	var provider payment.Provider
	if cfg.Payment.Enabled {
		provider = payment.NewStripeProvider(cfg.Payment.StripeSecretKey, cfg.Payment.SuccessURL, cfg.Payment.CancelURL)
	} else {
		logger.Warn("Payments disabled: bookings go to manual payment")
	}

	httpClient := httpclient.NewStandardClient()
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.TTLHours)

	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewMentorProfileRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	profileCache := cache.NewProfileCache(profileRepo, cfg.Cache.ProfileTTLSeconds)

	profileService := services.NewMentorProfileService(userRepo, profileRepo, profileCache, uploader, httpClient, cfg)
	slotService := services.NewSlotService(slotRepo, userRepo)
	bookingService := services.NewBookingService(bookingRepo, paymentRepo, profileRepo, provider, httpClient, cfg)
	pendingService := services.NewPendingBookingService(markers)

	orchestrator := booking.NewOrchestrator(
		booking.NewServiceSlots(slotService),
		bookingService,
		markers,
		cfg.Booking.ManualPaymentURL,
	)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}))

	registerAPIRoutes(appCtx, router, cfg, tokenManager, routeHandlers{
		health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database":      pool,
			"pending_store": markers,
		}),
		profiles:       handlers.NewMentorProfileHandler(profileService),
		slots:          handlers.NewSlotHandler(slotService),
		bookings:       handlers.NewBookingHandler(bookingService, pendingService),
		sessionBooking: handlers.NewSessionBookingHandler(orchestrator),
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancelApp()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newPendingStore uses Redis when REDIS_URL is set and process memory otherwise
func newPendingStore(cfg *config.Config) (pending.Store, func()) {
	ttl := time.Duration(cfg.Booking.PendingTTLHours) * time.Hour

	if cfg.Redis.URL == "" {
		logger.Warn("REDIS_URL not set: pending-booking markers kept in process memory")
		return pending.NewMemoryStore(ttl), func() {}
	}

	client, err := pending.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Failed to configure Redis", zap.Error(err))
	}
	store := pending.NewRedisStore(client, ttl)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
}
