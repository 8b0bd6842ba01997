package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quizlink/cmd/seed_initial_data/internal/seedmodels"
	"quizlink/internal/config"
	"quizlink/internal/database"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"
	"quizlink/internal/repository"
	"quizlink/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/demo_quizzes.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	seedFilePath := defaultSeedFilePath
	if len(os.Args) > 1 {
		seedFilePath = os.Args[1]
	}

	if err := database.RunMigrations(cfg.GetDSN()); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}
	var seed seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	userRepo := repository.NewSQLXUserRepository(db)
	quizRepo := repository.NewSQLXQuizRepository(db)
	quizService := service.NewQuizService(quizRepo, repository.NewTransactionManagerAdapter(db), nil)
	questionService := service.NewQuestionService(quizRepo, repository.NewSQLXQuestionRepository(db), nil, 0)

	owner, err := ensureOwner(ctx, userRepo, seed.Owner)
	if err != nil {
		log.Fatal("Failed to prepare seed owner", zap.Error(err))
	}

	for _, sq := range seed.Quizzes {
		if err := seedQuiz(ctx, log, quizService, questionService, owner.ID, sq); err != nil {
			log.Error("Error seeding quiz", zap.String("quiz", sq.Name), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

func ensureOwner(ctx context.Context, users domain.UserRepository, owner seedmodels.SeedOwner) (*domain.User, error) {
	email := domain.NormalizeEmail(owner.Email)
	if email == "" {
		return nil, fmt.Errorf("seed owner email is required")
	}
	user, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user = domain.NewUser(email, owner.Name, "")
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedQuiz creates the quiz and its questions. A quiz whose name the owner already uses is skipped.
func seedQuiz(
	ctx context.Context,
	log *zap.Logger,
	quizzes service.QuizService,
	questions service.QuestionService,
	ownerID string,
	sq seedmodels.SeedQuiz,
) error {
	quiz, err := quizzes.CreateQuiz(ctx, ownerID, &dto.CreateQuizRequest{Name: sq.Name, Description: sq.Description})
	if domain.HasCode(err, domain.CodeConflict) {
		log.Info("Quiz exists, skipping", zap.String("name", sq.Name))
		return nil
	}
	if err != nil {
		return err
	}

	for _, q := range sq.Questions {
		_, err := questions.CreateQuestion(ctx, ownerID, &dto.CreateQuestionRequest{
			QuizID:  quiz.ID,
			Text:    q.Text,
			Options: q.Options,
			Correct: q.Correct,
		})
		if err != nil {
			return fmt.Errorf("failed to save question %q: %w", q.Text, err)
		}
	}
	log.Info("Seeded quiz", zap.String("id", quiz.ID), zap.String("name", quiz.Name), zap.Int("questions", len(sq.Questions)))
	return nil
}
