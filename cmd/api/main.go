// @title Design Dojo API
// @version 1.0
// @description Design-pattern practice platform: questions, LLM-scored submissions and ratings.
// @host localhost:8090
// @BasePath /
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

	_ "design-dojo/cmd/api/docs"
	"design-dojo/internal/adapter"
	"design-dojo/internal/adapter/evaluator"
	"design-dojo/internal/cache"
	"design-dojo/internal/catalog"
	"design-dojo/internal/config"
	"design-dojo/internal/database"
	"design-dojo/internal/domain"
	"design-dojo/internal/handler"
	"design-dojo/internal/logger"
	"design-dojo/internal/metrics"
	"design-dojo/internal/middleware"
	"design-dojo/internal/repository"
	"design-dojo/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
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

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	questions, err := catalog.New()
	if err != nil {
		appLogger.Fatal("Failed to load question catalog", zap.Error(err))
	}
	appLogger.Info("Question catalog loaded", zap.Int("questions", len(questions.All())))

	model, err := evaluator.NewModel(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	codeEvaluator := evaluator.NewLLMEvaluator(model, evaluator.Config{
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
	})
	appLogger.Info("LLM evaluator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	// Redis is optional; without it solutions are served from the database.
	var solutionCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, solution cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			solutionCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis")
		}
	}

	userRepository := repository.NewUserRepository(db)
	submissionRepository := repository.NewSubmissionRepository(db)
	solutionRepository := repository.NewSolutionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	solutionService := service.NewSolutionService(questions, solutionRepository, submissionRepository,
		codeEvaluator, solutionCache, cfg.Cache.SolutionTTL)
	submissionService := service.NewSubmissionService(userRepository, submissionRepository,
		questions, codeEvaluator, solutionService)
	questionService := service.NewQuestionService(questions, userRepository)
	userService := service.NewUserService(userRepository, questions, txManager)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,id",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	handler.RegisterRoutes(app, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Question:   handler.NewQuestionHandler(questionService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Solution:   handler.NewSolutionHandler(solutionService),
	}, authService)

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
