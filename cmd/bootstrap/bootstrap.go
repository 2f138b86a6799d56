package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-records/config"
	"hospital-records/internal/converter"
	"hospital-records/internal/delivery/dto"
	deliveryHttp "hospital-records/internal/delivery/http"
	"hospital-records/internal/delivery/http/handler"
	"hospital-records/internal/delivery/http/middleware"
	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/cache"
	"hospital-records/internal/infrastructure/database"
	"hospital-records/internal/repository"
	"hospital-records/internal/service"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/password"
	"hospital-records/pkg/token"
	"hospital-records/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	UserUsecase usecase.UserUsecase
}

// LoadConfig configures logging and reads the configuration.
func LoadConfig() (*config.Config, error) {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// OpenDatabase connects to Postgres with the configured pool.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logrus.Info("Database connected successfully")
	return db, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	db, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		migrator, err := database.NewMigrator(db)
		if err != nil {
			app.Close()
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Redis only backs the token cache; without it every request reads the token table
	tokenCache := cache.NewNopTokenCache()
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.RedisClient = redisClient
		tokenCache = cache.NewRedisTokenCache(redisClient, cfg.Auth.CacheTTL)
		logrus.Info("Redis connected successfully")
	}

	app.initialize(tokenCache)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, use cases and handlers into the HTTP server
func (app *App) initialize(tokenCache domainRepo.TokenCache) {
	cfg := app.Config
	log := logrus.StandardLogger()

	customValidator := validator.NewValidator()
	tokenService := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	transactor := database.NewTransactor(app.DB)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	authTokenRepo := repository.NewAuthTokenRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(transactor, log, userRepo, authTokenRepo, tokenCache, auditService, tokenService, hasher)
	userUsecase := usecase.NewUserUsecase(transactor, log, userRepo, profileRepo, authTokenRepo, tokenCache, auditService,
		hasher, customValidator, usecase.UserUsecaseOptions{ApplyProfileUpdates: cfg.App.ApplyProfileUpdates})
	auditLogUsecase := usecase.NewAuditLogUsecase(transactor, log, auditLogRepo)

	medicalHistoryUsecase := usecase.NewRecordUsecase[entity.MedicalHistory, *entity.MedicalHistory, *dto.MedicalHistoryResponse](
		transactor, log, repository.NewRecordRepository[entity.MedicalHistory](), userRepo, auditService, customValidator,
		"medical_history", converter.MedicalHistoryToResponse)
	visitUsecase := usecase.NewRecordUsecase[entity.Visit, *entity.Visit, *dto.VisitResponse](
		transactor, log, repository.NewRecordRepository[entity.Visit](), userRepo, auditService, customValidator,
		"visit", converter.VisitToResponse)
	prescriptionUsecase := usecase.NewRecordUsecase[entity.Prescription, *entity.Prescription, *dto.PrescriptionResponse](
		transactor, log, repository.NewRecordRepository[entity.Prescription](), userRepo, auditService, customValidator,
		"prescription", converter.PrescriptionToResponse)
	allergyUsecase := usecase.NewRecordUsecase[entity.Allergy, *entity.Allergy, *dto.AllergyResponse](
		transactor, log, repository.NewRecordRepository[entity.Allergy](), userRepo, auditService, customValidator,
		"allergy", converter.AllergyToResponse)

	// Initialize handlers
	handlers := []deliveryHttp.RouteProvider{
		handler.NewHealthHandler(),
		handler.NewAuthHandler(authUsecase, customValidator),
		handler.NewUserHandler(userUsecase, customValidator),
		handler.NewRecordHandler("medical-history", "Medical history", medicalHistoryUsecase, customValidator,
			func() dto.RecordCreateRequest[*entity.MedicalHistory] { return &dto.MedicalHistoryCreateRequest{} },
			func() dto.RecordUpdateRequest[*entity.MedicalHistory] { return &dto.MedicalHistoryUpdateRequest{} },
		),
		handler.NewRecordHandler("visit", "Visit", visitUsecase, customValidator,
			func() dto.RecordCreateRequest[*entity.Visit] { return &dto.VisitCreateRequest{} },
			func() dto.RecordUpdateRequest[*entity.Visit] { return &dto.VisitUpdateRequest{} },
		),
		handler.NewRecordHandler("prescription", "Prescription", prescriptionUsecase, customValidator,
			func() dto.RecordCreateRequest[*entity.Prescription] { return &dto.PrescriptionCreateRequest{} },
			func() dto.RecordUpdateRequest[*entity.Prescription] { return &dto.PrescriptionUpdateRequest{} },
		),
		handler.NewRecordHandler("allergy", "Allergy", allergyUsecase, customValidator,
			func() dto.RecordCreateRequest[*entity.Allergy] { return &dto.AllergyCreateRequest{} },
			func() dto.RecordUpdateRequest[*entity.Allergy] { return &dto.AllergyUpdateRequest{} },
		),
		handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(authMiddleware, corsMiddleware, loggingMiddleware, handlers...)
	httpRouter := router.Setup()

	app.UserUsecase = userUsecase
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
