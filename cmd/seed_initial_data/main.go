package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"design-dojo/cmd/seed_initial_data/internal/seedmodels"
	"design-dojo/internal/adapter/evaluator"
	"design-dojo/internal/catalog"
	"design-dojo/internal/config"
	"design-dojo/internal/database"
	"design-dojo/internal/domain"
	"design-dojo/internal/logger"
	"design-dojo/internal/repository"
	"design-dojo/internal/service"
	"design-dojo/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedFilePath = "configs/seed_data/demo_users.json"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seed seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("users_loaded", len(seed.Users)))

	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)
	for _, su := range seed.Users {
		if err := seedUser(ctx, txManager, userRepo, log, su); err != nil {
			log.Error("Error seeding user, transaction rolled back", zap.String("username", su.Username), zap.Error(err))
		}
	}

	if seed.WarmSolutions {
		if err := warmSolutions(ctx, cfg, db, log); err != nil {
			log.Fatal("Failed to warm optimal solutions", zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

// seedUser creates one account, skipping it when the username or email exists.
func seedUser(
	ctx context.Context,
	txManager domain.TransactionManager,
	userRepo domain.UserRepository,
	log *zap.Logger,
	su seedmodels.SeedUser,
) error {
	return txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		email := strings.ToLower(strings.TrimSpace(su.Email))
		if existing, err := userRepo.GetUserByEmail(txCtx, email); err != nil {
			return fmt.Errorf("error checking email %s: %w", email, err)
		} else if existing != nil {
			log.Info("User exists.", zap.String("id", existing.ID), zap.String("username", existing.Username))
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.Username, err)
		}

		user := domain.NewUser(util.NewULID(), su.Username, email, string(hash))
		for _, lesson := range su.CompletedLessons {
			user.CompleteLesson(lesson)
			user.TouchLesson(lesson)
		}

		if err := userRepo.CreateUser(txCtx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				log.Info("Username already taken, skipping.", zap.String("username", su.Username))
				return nil
			}
			return fmt.Errorf("failed to save user %s: %w", su.Username, err)
		}
		log.Info("Created user.", zap.String("id", user.ID), zap.String("username", user.Username),
			zap.Int("completed_lessons", user.CompletedLessonCount))
		return nil
	})
}

// warmSolutions generates and stores the optimal solution of every catalog question.
func warmSolutions(ctx context.Context, cfg *config.Config, db *sqlx.DB, log *zap.Logger) error {
	questions, err := catalog.New()
	if err != nil {
		return err
	}
	model, err := evaluator.NewModel(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	solutions := service.NewSolutionService(
		questions,
		repository.NewSolutionRepository(db),
		repository.NewSubmissionRepository(db),
		evaluator.NewLLMEvaluator(model, evaluator.Config{Timeout: cfg.LLM.Timeout, Temperature: cfg.LLM.Temperature}),
		nil,
		0,
	)

	for _, q := range questions.All() {
		solution, fromCache, err := solutions.Resolve(ctx, &q)
		if err != nil {
			return fmt.Errorf("question %s: %w", q.QuestionID, err)
		}
		log.Info("Optimal solution ready",
			zap.String("question_id", q.QuestionID),
			zap.Bool("already_stored", fromCache),
			zap.Bool("degraded", solution.Degraded))
	}
	return nil
}
