package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crediteval/credit-engine/internal/config"
	"github.com/crediteval/credit-engine/internal/handler"
	"github.com/crediteval/credit-engine/internal/logger"
	"github.com/crediteval/credit-engine/internal/repository"
	"github.com/crediteval/credit-engine/internal/service"
	"github.com/crediteval/credit-engine/pkg/response"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	borrowerRepo := repository.NewBorrowerRepository(db)
	reportRepo := repository.NewReportRepository(db)
	userRepo := repository.NewUserRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)

	// Initialize services
	creditService := service.NewCreditService(borrowerRepo, reportRepo, blacklistRepo, redisClient, cfg, zapLogger)
	reportService := service.NewReportService(reportRepo, redisClient, cfg, zapLogger)
	userService := service.NewUserService(userRepo, zapLogger)

	borrowerHandler := handler.NewBorrowerHandler(creditService)
	reportHandler := handler.NewReportHandler(reportService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(borrowerHandler, reportHandler, userHandler, healthHandler, zapLogger)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	borrowerHandler *handler.BorrowerHandler,
	reportHandler *handler.ReportHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	zapLogger *zap.Logger,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(response.LoggingMiddleware(zapLogger))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/borrowers", borrowerHandler.CreateBorrower).Methods("POST")
	api.HandleFunc("/borrowers/analyze", borrowerHandler.AnalyzeBorrower).Methods("POST")
	api.HandleFunc("/borrowers/{borrowerId}", borrowerHandler.GetBorrower).Methods("GET")

	api.HandleFunc("/reports", reportHandler.ListReports).Methods("GET")
	api.HandleFunc("/reports/statistics", reportHandler.Statistics).Methods("GET")
	api.HandleFunc("/reports/{reportId}", reportHandler.GetReport).Methods("GET")
	api.HandleFunc("/reports/{reportId}/status", reportHandler.UpdateStatus).Methods("PUT")
	api.HandleFunc("/reports/{reportId}/scoring", reportHandler.EditScoring).Methods("PUT")
	api.HandleFunc("/reports/{reportId}/send", reportHandler.SendReport).Methods("POST")

	api.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	api.HandleFunc("/users/{userId}", userHandler.GetUser).Methods("GET")

	return router
}
