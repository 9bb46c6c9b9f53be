package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/agent/dispatcher"
	"ai-calling-agent/internal/agent/localai"
	"ai-calling-agent/internal/agent/tools"
	deliveryHttp "ai-calling-agent/internal/delivery/http"
	"ai-calling-agent/internal/delivery/http/handler"
	"ai-calling-agent/internal/delivery/http/middleware"
	domainRepo "ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/infrastructure/cache"
	"ai-calling-agent/internal/infrastructure/database"
	"ai-calling-agent/internal/infrastructure/llm"
	"ai-calling-agent/internal/infrastructure/localstore"
	"ai-calling-agent/internal/infrastructure/speech"
	"ai-calling-agent/internal/repository"
	"ai-calling-agent/internal/repository/mongodb"
	"ai-calling-agent/internal/service"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/jwt"
	"ai-calling-agent/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	Mongo       *mongo.Client
	Store       *domainRepo.Store
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize the entity store
	if err := app.openStore(cfg, log); err != nil {
		app.Close()
		return nil, err
	}
	log.Infof("Entity store ready (%s)", cfg.App.StoreBackend)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, log, app.Store, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func (app *App) openStore(cfg *config.Config, log *logrus.Logger) error {
	switch cfg.App.StoreBackend {
	case config.StoreBackendPostgres:
		if err := database.RunMigrations(cfg.DB, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		db, err := database.NewPostgresConnection(cfg.DB, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		app.Store = repository.NewGormStore(db)

	case config.StoreBackendSQLite:
		db, err := database.NewSQLiteConnection(cfg.DB.SQLitePath, log)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		app.DB = db
		app.Store = repository.NewGormStore(db)

	case config.StoreBackendMongo:
		client, err := database.NewMongoClient(context.Background(), cfg.Mongo, log)
		if err != nil {
			return err
		}
		app.Mongo = client

		db := client.Database(cfg.Mongo.Database)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
		app.Store = mongodb.NewStore(db)

	default:
		return fmt.Errorf("unknown store backend %q", cfg.App.StoreBackend)
	}
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, store *domainRepo.Store, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	dedupService := service.NewDedupService(redisClient, log, cfg.Dedup.Window)
	auditService := service.NewConversationAuditService(log, store.ConversationLogs)
	mirror := localstore.NewMirror(cfg.LocalMirror.Dir, cfg.LocalMirror.Prefix, log)

	// Tools and REST creates share one duplicate window and mirror
	writeGuard := tools.NewWriteGuard(dedupService, mirror, log)

	// Initialize the agent
	registry := tools.NewRegistry(store, log, tools.WithWriteGuard(writeGuard))

	remote, err := newRemoteResponder(cfg.LLM, log, registry)
	if err != nil {
		return nil, err
	}
	local := localai.New(log)

	stt, tts, err := newSpeechClients(cfg.Speech, log)
	if err != nil {
		return nil, err
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, store.Users, jwtService, redisClient)
	companyUsecase := usecase.NewCompanyUsecase(log, store.Companies)
	doctorUsecase := usecase.NewDoctorUsecase(log, store.Doctors)
	vacancyUsecase := usecase.NewVacancyUsecase(log, store.Vacancies)
	orderUsecase := usecase.NewOrderUsecase(log, store.Orders, writeGuard)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, store.Appointments, registry, writeGuard)
	feedbackUsecase := usecase.NewFeedbackUsecase(log, store.Feedback, writeGuard)
	logUsecase := usecase.NewConversationLogUsecase(log, store.ConversationLogs)
	conversationUsecase := usecase.NewConversationUsecase(log, store.Companies, remote, local, auditService)
	speechUsecase := usecase.NewSpeechUsecase(log, store.Companies, stt, tts)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:            handler.NewAuthHandler(authUsecase, customValidator, jwtService),
		Company:         handler.NewCompanyHandler(companyUsecase, customValidator),
		Doctor:          handler.NewDoctorHandler(doctorUsecase, customValidator),
		Vacancy:         handler.NewVacancyHandler(vacancyUsecase, customValidator),
		Order:           handler.NewOrderHandler(orderUsecase, customValidator),
		Appointment:     handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Feedback:        handler.NewFeedbackHandler(feedbackUsecase, customValidator),
		ConversationLog: handler.NewConversationLogHandler(logUsecase),
		Conversation:    handler.NewConversationHandler(conversationUsecase, customValidator),
		Speech:          handler.NewSpeechHandler(speechUsecase, customValidator),
		Tool:            handler.NewToolHandler(registry),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// newRemoteResponder returns nil when no completion credential is configured,
// so conversations fall back to the local engine.
func newRemoteResponder(cfg config.LLMConfig, log *logrus.Logger, registry *tools.Registry) (usecase.Responder, error) {
	client, err := llm.NewClient(cfg, log)
	if errors.Is(err, llm.ErrNoCredential) {
		log.Warn("No completion credential configured; using the local fallback engine")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = llm.DefaultModel(cfg.Provider)
	}
	log.Infof("Completion provider %s, model %s", client.Provider(), model)

	return dispatcher.New(dispatcher.Config{
		Persona:      cfg.Persona,
		Model:        model,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		HistoryLimit: cfg.HistorySize,
	}, client, registry, log), nil
}

// newSpeechClients leaves a client nil when its credential is missing.
func newSpeechClients(cfg config.SpeechConfig, log *logrus.Logger) (usecase.Transcriber, usecase.Synthesizer, error) {
	var stt usecase.Transcriber
	deepgram, err := speech.NewDeepgramClient(cfg, log)
	switch {
	case err == nil:
		stt = deepgram
	case errors.Is(err, speech.ErrNotConfigured):
		log.Warn("Speech to text is not configured")
	default:
		return nil, nil, fmt.Errorf("failed to create speech to text client: %w", err)
	}

	var tts usecase.Synthesizer
	azure, err := speech.NewAzureTTSClient(cfg, log)
	switch {
	case err == nil:
		tts = azure
	case errors.Is(err, speech.ErrNotConfigured):
		log.Warn("Text to speech is not configured")
	default:
		return nil, nil, fmt.Errorf("failed to create text to speech client: %w", err)
	}

	return stt, tts, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, mongo, redis)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Mongo.Disconnect(ctx)
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
