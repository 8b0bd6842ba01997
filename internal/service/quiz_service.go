package service

import (
	"context"
	"errors"

	"quizlink/internal/cache"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the owner-side quiz operations
type QuizService interface {
	ListQuizzes(ctx context.Context, ownerID string) (*dto.QuizListResponse, error)
	GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error)
	CreateQuiz(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, quizID, ownerID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, quizID, ownerID string) error
}

type quizService struct {
	quizRepo  domain.QuizRepository
	txManager domain.TransactionManager
	cache     domain.Cache
}

// NewQuizService creates a new instance of quizService. cache may be nil.
func NewQuizService(quizRepo domain.QuizRepository, txManager domain.TransactionManager, cache domain.Cache) QuizService {
	return &quizService{
		quizRepo:  quizRepo,
		txManager: txManager,
		cache:     cache,
	}
}

func toQuizResponse(q *domain.Quiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:            q.ID,
		Name:          q.Name,
		Description:   q.Description,
		CreatedBy:     q.CreatedBy,
		QuestionCount: q.QuestionCount,
		ResponseCount: q.ResponseCount,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// quizLookupError maps a repository error for quizID into a domain error.
func quizLookupError(err error, quizID string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewQuizNotFoundError(quizID)
	}
	return domain.NewStoreError("Failed to load quiz", err)
}

func (s *quizService) ListQuizzes(ctx context.Context, ownerID string) (*dto.QuizListResponse, error) {
	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list quizzes", err)
	}

	resp := &dto.QuizListResponse{Quizzes: make([]dto.QuizResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, toQuizResponse(q))
	}
	return resp, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizForOwner(ctx, quizID, ownerID)
	if err != nil {
		return nil, quizLookupError(err, quizID)
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

// CreateQuiz inserts the quiz and registers its creator as first owner atomically.
func (s *quizService) CreateQuiz(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	quiz := domain.NewQuiz(ownerID, req.Name, req.Description)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.CreateQuiz(txCtx, quiz); err != nil {
			return err
		}
		return s.quizRepo.AddOwner(txCtx, quiz.ID, ownerID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewConflictError("A quiz with this name already exists").WithContext("name", quiz.Name)
		}
		return nil, domain.NewStoreError("Failed to create quiz", err)
	}

	logger.Get().Info("Quiz created", zap.String("quizID", quiz.ID), zap.String("ownerID", ownerID))
	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, quizID, ownerID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz := domain.NewQuiz(ownerID, req.Name, req.Description)
	quiz.ID = quizID
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.UpdateQuiz(ctx, quiz, ownerID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewConflictError("A quiz with this name already exists").WithContext("name", quiz.Name)
		}
		return nil, quizLookupError(err, quizID)
	}
	invalidateQuestions(ctx, s.cache, quizID)

	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	if err := s.quizRepo.DeleteQuiz(ctx, quizID, ownerID); err != nil {
		return quizLookupError(err, quizID)
	}
	invalidateQuestions(ctx, s.cache, quizID)
	logger.Get().Info("Quiz deleted", zap.String("quizID", quizID), zap.String("ownerID", ownerID))
	return nil
}

// invalidateQuestions drops the cached respondent view. Failures only cost staleness until TTL.
func invalidateQuestions(ctx context.Context, c domain.Cache, quizID string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.QuizQuestionsKey(quizID)); err != nil {
		logger.Get().Warn("Failed to invalidate question cache", zap.Error(err), zap.String("quizID", quizID))
	}
}
