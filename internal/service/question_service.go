package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"quizlink/internal/cache"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"

	"go.uber.org/zap"
)

// QuestionService defines question management and the respondent question view
type QuestionService interface {
	ListQuestionsForOwner(ctx context.Context, quizID, ownerID string) ([]dto.QuestionResponse, error)
	// GetQuestionsForTaking returns the quiz without answer keys. It needs no authentication.
	GetQuestionsForTaking(ctx context.Context, quizID string) (*dto.QuizForTakingResponse, error)
	CreateQuestion(ctx context.Context, ownerID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, questionID, ownerID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, questionID, ownerID string) error
}

type questionService struct {
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	cache        domain.Cache
	cacheTTL     time.Duration
}

// NewQuestionService creates a new instance of questionService. cache may be nil.
func NewQuestionService(quizRepo domain.QuizRepository, questionRepo domain.QuestionRepository, cache domain.Cache, cacheTTL time.Duration) QuestionService {
	return &questionService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:        q.ID,
		QuizID:    q.QuizID,
		Text:      q.Text,
		Options:   q.Options,
		Correct:   q.Correct,
		Position:  q.Position,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

func questionLookupError(err error, questionID string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewQuestionNotFoundError(questionID)
	}
	return domain.NewStoreError("Failed to access question", err)
}

func (s *questionService) ListQuestionsForOwner(ctx context.Context, quizID, ownerID string) ([]dto.QuestionResponse, error) {
	if _, err := s.quizRepo.GetQuizForOwner(ctx, quizID, ownerID); err != nil {
		return nil, quizLookupError(err, quizID)
	}
	questions, err := s.questionRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list questions", err)
	}
	return toQuestionResponses(questions), nil
}

func (s *questionService) GetQuestionsForTaking(ctx context.Context, quizID string) (*dto.QuizForTakingResponse, error) {
	if cached := s.cachedTakingView(ctx, quizID); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, quizLookupError(err, quizID)
	}
	questions, err := s.questionRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list questions", err)
	}

	resp := &dto.QuizForTakingResponse{
		QuizID:      quiz.ID,
		Name:        quiz.Name,
		Description: quiz.Description,
		Questions:   make([]dto.PublicQuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		pub := q.Public()
		resp.Questions = append(resp.Questions, dto.PublicQuestionResponse{
			ID:       pub.ID,
			QuizID:   pub.QuizID,
			Text:     pub.Text,
			Options:  pub.Options,
			Position: pub.Position,
		})
	}

	s.storeTakingView(ctx, resp)
	return resp, nil
}

func (s *questionService) cachedTakingView(ctx context.Context, quizID string) *dto.QuizForTakingResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cache.QuizQuestionsKey(quizID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Question cache read failed", zap.Error(err), zap.String("quizID", quizID))
		}
		return nil
	}
	var resp dto.QuizForTakingResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Get().Warn("Discarding malformed question cache entry", zap.Error(err), zap.String("quizID", quizID))
		return nil
	}
	return &resp
}

func (s *questionService) storeTakingView(ctx context.Context, resp *dto.QuizForTakingResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode question cache entry", zap.Error(err), zap.String("quizID", resp.QuizID))
		return
	}
	if err := s.cache.Set(ctx, cache.QuizQuestionsKey(resp.QuizID), string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("Question cache write failed", zap.Error(err), zap.String("quizID", resp.QuizID))
	}
}

func (s *questionService) CreateQuestion(ctx context.Context, ownerID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question := &domain.Question{
		QuizID:  strings.TrimSpace(req.QuizID),
		Text:    strings.TrimSpace(req.Text),
		Options: req.Options,
		Correct: req.Correct,
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.CreateQuestion(ctx, question, ownerID); err != nil {
		return nil, quizLookupError(err, question.QuizID)
	}
	invalidateQuestions(ctx, s.cache, question.QuizID)

	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, questionID, ownerID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question := &domain.Question{
		ID:      questionID,
		Text:    strings.TrimSpace(req.Text),
		Options: req.Options,
		Correct: req.Correct,
	}
	if err := question.ValidateContent(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateQuestion(ctx, question, ownerID); err != nil {
		return nil, questionLookupError(err, questionID)
	}
	invalidateQuestions(ctx, s.cache, question.QuizID)

	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, questionID, ownerID string) error {
	quizID, err := s.questionRepo.DeleteQuestion(ctx, questionID, ownerID)
	if err != nil {
		return questionLookupError(err, questionID)
	}
	invalidateQuestions(ctx, s.cache, quizID)
	return nil
}
