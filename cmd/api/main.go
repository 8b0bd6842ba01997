// @title Quizlink API
// @version 1.0
// @description Create multiple-choice quizzes, share them, collect scored responses.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quizlink/cmd/api/docs"
	"quizlink/internal/adapter"
	"quizlink/internal/cache"
	"quizlink/internal/config"
	"quizlink/internal/database"
	"quizlink/internal/domain"
	"quizlink/internal/handler"
	"quizlink/internal/logger"
	"quizlink/internal/middleware"
	"quizlink/internal/repository"
	"quizlink/internal/service"
	"quizlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN()); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the question cache and token revocation are disabled.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	userRepository := repository.NewSQLXUserRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	responseRepository := repository.NewSQLXResponseRepository(db)
	abandonRepository := repository.NewSQLXAbandonRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	validator := validation.NewValidator()
	questionsTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.QuizQuestions, 10*time.Minute)

	authService, err := service.NewAuthService(userRepository, cacheAdapter, service.NewGoogleProvider(cfg.Auth.GoogleOAuth), cfg.Auth.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(quizRepository, txManager, cacheAdapter)
	questionService := service.NewQuestionService(quizRepository, questionRepository, cacheAdapter, questionsTTL)
	submissionService := service.NewSubmissionService(quizRepository, questionRepository, responseRepository, validator, cfg.Submission.ScoringConcurrency)
	abandonService := service.NewAbandonService(quizRepository, abandonRepository)

	abandonTracker := service.NewAbandonTracker(abandonService, cfg.Abandon)
	abandonTracker.Start()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler.RegisterRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, validator, cfg.Server),
		Quiz:       handler.NewQuizHandler(quizService, validator),
		Question:   handler.NewQuestionHandler(questionService, validator),
		Submission: handler.NewSubmissionHandler(submissionService),
		Abandon:    handler.NewAbandonHandler(abandonService, abandonTracker),
		Health:     handler.NewHealthHandler(db, cacheAdapter),
	}, authService, middleware.NewValidationMiddleware(validator))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := abandonTracker.Stop(ctx); err != nil {
		appLogger.Warn("Abandon queue not fully drained", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
