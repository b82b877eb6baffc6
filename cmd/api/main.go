package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/auth"
	"github.com/coachdesk/api/internal/config"
	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/handlers"
	middlewareCustom "github.com/coachdesk/api/internal/middleware"
	"github.com/coachdesk/api/internal/models"
	"github.com/coachdesk/api/internal/repositories"
	"github.com/coachdesk/api/internal/routes"
	"github.com/coachdesk/api/internal/services"
	"github.com/coachdesk/api/migrations"
	pkgauth "github.com/coachdesk/api/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.Migrate(migrateCtx, migrations.FS); err != nil {
		migrateCancel()
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	migrateCancel()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	linkRepo := repositories.NewLinkRepository(db)
	mealPlanRepo := repositories.NewMealPlanRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	programRecordRepo := repositories.NewProgramRecordRepository(db)
	mealDayRepo := repositories.NewMealDayRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	reportRepo := repositories.NewDailyReportRepository(db)
	athleteInfoRepo := repositories.NewAthleteInfoRepository(db)

	// Access-scoping core. The admin scan walks the directory page by page;
	// an optional TTL cache keeps hot paths from re-scanning on every check.
	var adminLister access.AdminLister = access.NewAdminScanner(userRepo)
	if cfg.Access.AdminScanCacheTTL > 0 {
		cached, err := access.NewCachedAdminScanner(adminLister, cfg.Access.AdminScanCacheTTL)
		if err != nil {
			logger.Error("failed to initialize admin scan cache", slog.Any("error", err))
			os.Exit(1)
		}
		adminLister = cached
	}
	relationships := access.NewRelationshipIndex(adminLister)
	linkGate := access.NewLinkGate(linkRepo)
	scopeResolver := access.NewScopeResolver(relationships)
	recordGate := access.NewRecordGate(linkGate)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	// AWS SES email service
	emailService, err := services.NewAWSSESEmailService(
		cfg.Email.AWSRegion,
		cfg.Email.FromAddress,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	mealPlanService := services.NewMealPlanService(mealPlanRepo, scopeResolver, recordGate, logger)
	programService := services.NewProgramService(programRepo, programRecordRepo, scopeResolver, recordGate, logger)
	mealDayService := services.NewMealDayService(mealDayRepo, scopeResolver, recordGate, logger)
	noteService := services.NewNoteService(noteRepo, scopeResolver, recordGate, logger)
	taskService := services.NewTaskService(taskRepo, scopeResolver, recordGate, logger)
	reportService := services.NewReportService(reportRepo, linkGate, recordGate, logger)
	linkService := services.NewLinkService(linkRepo, emailService, logger)
	athleteService := services.NewAthleteService(athleteInfoRepo, recordGate, logger)

	// Initialize handlers
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		MealPlans: handlers.NewMealPlanHandler(mealPlanService),
		Programs:  handlers.NewProgramHandler(programService),
		MealDays:  handlers.NewMealDayHandler(mealDayService),
		Notes:     handlers.NewNoteHandler(noteService),
		Tasks:     handlers.NewTaskHandler(taskService),
		Reports:   handlers.NewReportHandler(reportService),
		Links:     handlers.NewLinkHandler(linkService),
		Athletes:  handlers.NewAthleteHandler(athleteService),
	}

	// Bootstrap first admin user if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, h, tokenManager)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first admin user if ADMIN_EMAIL and ADMIN_PASSWORD are set
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	// Check if admin already exists
	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	// Hash password
	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	// Create admin user
	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Name:         "Admin",
		Type:         "admin",
		Status:       "active",
	}

	_, err = userRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}
