// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/nexus/internal/audit"
	"github.com/dangerclosesec/nexus/internal/auth"
	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/email"
	"github.com/dangerclosesec/nexus/internal/handler"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/dangerclosesec/nexus/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env before anything reads the environment
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize object storage
	storageClient, err := storage.NewS3Client(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("setting up storage: %w", err)
	}

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	woRepo := repository.NewWorkOrderRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Initialize auth
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg)
	if err != nil {
		return fmt.Errorf("setting up email service: %w", err)
	}

	// Initialize audit recorder
	recorder := audit.NewDBRecorder(activityRepo)

	// Initialize services
	orgService := service.NewOrganizationService(orgRepo)
	userService := service.NewUserService(userRepo, orgRepo, tokenManager)
	assetService := service.NewAssetService(assetRepo, orgRepo, userRepo, recorder)
	woService := service.NewWorkOrderService(woRepo, orgRepo, userRepo, assetRepo, emailService)
	uploadService := service.NewUploadService(assetRepo, storageClient, recorder, cfg)

	// Initialize handlers
	orgHandler := handler.NewOrganizationHandler(orgService, cfg)
	userHandler := handler.NewUserHandler(userService, cfg)
	assetHandler := handler.NewAssetHandler(assetService, woService, cfg)
	woHandler := handler.NewWorkOrderHandler(woService, cfg)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(db))

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", orgHandler.List)
			r.Post("/", orgHandler.Create)
			r.Get("/{id}", orgHandler.Get)
			r.Put("/{id}", orgHandler.Update)
			r.Delete("/{id}", orgHandler.Delete)
			r.Get("/{id}/stats", orgHandler.Stats)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Post("/login", userHandler.Login)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.List)
			r.Post("/", assetHandler.Create)
			r.Get("/{id}", assetHandler.Get)
			r.Put("/{id}", assetHandler.Update)
			r.Delete("/{id}", assetHandler.Delete)
			r.Post("/{id}/maintenance", assetHandler.ScheduleMaintenance)
			r.Get("/{id}/maintenance-history", assetHandler.MaintenanceHistory)
		})

		r.Route("/work-orders", func(r chi.Router) {
			r.Get("/", woHandler.List)
			r.Post("/", woHandler.Create)
			r.Get("/{id}", woHandler.Get)
			r.Put("/{id}", woHandler.Update)
			r.Post("/{id}/comments", woHandler.AddComment)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Post("/", uploadHandler.Upload)
			r.Post("/presigned", uploadHandler.Presigned)
			r.Get("/download", uploadHandler.Download)
			r.Get("/health", uploadHandler.Health)
			r.Delete("/{assetId}/file", uploadHandler.DeleteFile)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// healthHandler pings the database on each probe.
func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"success":false,"message":"database unreachable"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"message":"healthy"}`))
	}
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
