package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/config"
	custommiddleware "github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/notify"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"
	"github.com/ashimthegreat/techbucket-website/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
	dispatcher  *notify.Dispatcher
	authService service.AuthService
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	quoteRepo := repository.NewQuoteRequestRepository(db)
	supportRepo := repository.NewSupportCaseRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	registerRepo := repository.NewEventRegistrationRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Initialize services
	authService := service.NewAuthService(adminRepo, tokenRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.SessionExpiry)
	catalogService := service.NewCatalogService(brandRepo, categoryRepo, productRepo, serviceRepo, eventRepo)
	formsService := service.NewFormsService(quoteRepo, supportRepo, inquiryRepo, registerRepo, eventRepo, outboxRepo, cfg.Notification, logger)
	triageService := service.NewTriageService(quoteRepo, supportRepo, inquiryRepo, registerRepo)
	dashboardService := service.NewDashboardService(brandRepo, categoryRepo, productRepo, serviceRepo, eventRepo, quoteRepo, supportRepo, inquiryRepo, registerRepo)

	// Initialize the email dispatcher. SMTP delivery requires a host;
	// without one the mailer only logs, which keeps development useful.
	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = notify.NewLogMailer(logger)
	}
	dispatcher := notify.NewDispatcher(outboxRepo, mailer, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	publicHandler := transport.NewPublicHandler(catalogService, logger)
	formsHandler := transport.NewFormsHandler(formsService, logger)
	catalogAdminHandler := transport.NewCatalogAdminHandler(catalogService, logger)
	triageHandler := transport.NewTriageHandler(triageService, dashboardService, logger)

	// Create middleware instances
	authMiddleware := custommiddleware.AuthMiddleware(authService, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	loginRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:login",
	}, logger)

	// Register routes
	publicHandler.RegisterRoutes(router)
	formsHandler.RegisterRoutes(router)
	router.Route("/api/admin", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware, loginRateLimit)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(custommiddleware.RequireAdmin(logger))
			catalogAdminHandler.RegisterRoutes(r)
			triageHandler.RegisterRoutes(r)
		})
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		dispatcher:  dispatcher,
		authService: authService,
	}

	return server
}

// Bootstrap prepares runtime state: it creates the default admin account
// if missing and starts the email dispatcher.
func (s *Server) Bootstrap(ctx context.Context) error {
	if s.config.Admin.Password == "" {
		s.logger.Warn("No default admin password configured, skipping admin bootstrap")
	} else {
		if err := s.authService.EnsureDefaultAdmin(ctx, s.config.Admin.Username, s.config.Admin.Password, s.config.Admin.Email); err != nil {
			return fmt.Errorf("failed to ensure default admin: %w", err)
		}
	}

	s.dispatcher.Start()
	return nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Stop the email dispatcher and wait for the in-flight batch
	if s.dispatcher != nil {
		s.dispatcher.Stop()
	}

	// Close the Redis connection
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
