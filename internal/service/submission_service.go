package service

import (
	"context"
	"errors"
	"strings"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"
	"quizlink/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultScoringConcurrency = 8

// SubmissionService scores and records respondent submissions
type SubmissionService interface {
	// Submit scores the answers and stores exactly one response per (quiz, email).
	Submit(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserResponseResponse, error)
	// GetResponse is the respondent's results view, answer key included.
	GetResponse(ctx context.Context, quizID, responseID string) (*dto.ResponseDetailResponse, error)
	ListResponses(ctx context.Context, quizID, ownerID string) (*dto.ResponseListResponse, error)
}

type submissionService struct {
	quizRepo           domain.QuizRepository
	questionRepo       domain.QuestionRepository
	responseRepo       domain.ResponseRepository
	validator          *validation.Validator
	scoringConcurrency int
}

// NewSubmissionService creates a new instance of submissionService
func NewSubmissionService(
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	responseRepo domain.ResponseRepository,
	validator *validation.Validator,
	scoringConcurrency int,
) SubmissionService {
	if scoringConcurrency <= 0 {
		scoringConcurrency = defaultScoringConcurrency
	}
	return &submissionService{
		quizRepo:           quizRepo,
		questionRepo:       questionRepo,
		responseRepo:       responseRepo,
		validator:          validator,
		scoringConcurrency: scoringConcurrency,
	}
}

func toUserResponseResponse(r *domain.UserResponse) dto.UserResponseResponse {
	results := make([]dto.AnswerResultResponse, 0, len(r.Results))
	for _, res := range r.Results {
		results = append(results, dto.AnswerResultResponse{
			QuestionID: res.QuestionID,
			Answer:     res.Answer,
			Correct:    res.Correct,
		})
	}
	return dto.UserResponseResponse{
		ID:                  r.ID,
		QuizID:              r.QuizID,
		Name:                r.Name,
		Email:               r.Email,
		Results:             results,
		TotalCorrectAnswers: r.TotalCorrect(),
		Abandoned:           r.Abandoned,
		CreatedAt:           r.CreatedAt,
	}
}

func (s *submissionService) validate(req *dto.SubmitAnswersRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	if len(req.QuestionIDs) != len(req.Answers) {
		return domain.ValidationErrors{
			domain.NewFieldError("answers", "answers must have the same length as questionIds"),
		}
	}
	return nil
}

func (s *submissionService) Submit(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserResponseResponse, error) {
	in := *req
	in.QuizID = strings.TrimSpace(in.QuizID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.GetQuiz(ctx, in.QuizID); err != nil {
		return nil, quizLookupError(err, in.QuizID)
	}

	exists, err := s.responseRepo.HasActiveResponse(ctx, in.QuizID, in.Email)
	if err != nil {
		return nil, domain.NewStoreError("Failed to check existing submission", err)
	}
	if exists {
		return nil, domain.NewDuplicateSubmissionError(in.QuizID)
	}

	results, err := s.score(ctx, in.QuizID, in.QuestionIDs, in.Answers)
	if err != nil {
		return nil, domain.NewStoreError("Failed to score answers", err)
	}

	response := &domain.UserResponse{
		QuizID:  in.QuizID,
		Name:    in.Name,
		Email:   in.Email,
		Results: results,
	}
	if err := s.responseRepo.CreateResponse(ctx, response); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.NewDuplicateSubmissionError(in.QuizID)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NewQuizNotFoundError(in.QuizID)
		default:
			return nil, domain.NewStoreError("Failed to save submission", err)
		}
	}

	logger.Get().Info("Quiz submission recorded",
		zap.String("quizID", response.QuizID),
		zap.String("responseID", response.ID),
		zap.Int("totalCorrect", response.TotalCorrect()),
		zap.Int("answered", len(results)))

	resp := toUserResponseResponse(response)
	return &resp, nil
}

// score checks each (questionID, answer) pair concurrently. results[i] always pairs with input i.
// A blank pair or a question outside the quiz scores false; a store failure aborts the whole submission.
func (s *submissionService) score(ctx context.Context, quizID string, questionIDs, answers []string) ([]domain.AnswerResult, error) {
	results := make([]domain.AnswerResult, len(questionIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scoringConcurrency)
	for i := range questionIDs {
		i := i
		g.Go(func() error {
			questionID := strings.TrimSpace(questionIDs[i])
			answer := answers[i]
			results[i] = domain.AnswerResult{QuestionID: questionID, Answer: answer}
			if questionID == "" || answer == "" {
				return nil
			}

			question, err := s.questionRepo.GetQuestionInQuiz(gctx, questionID, quizID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i].Correct = question.IsCorrect(answer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *submissionService) GetResponse(ctx context.Context, quizID, responseID string) (*dto.ResponseDetailResponse, error) {
	response, err := s.responseRepo.GetResponse(ctx, quizID, responseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewResponseNotFoundError(responseID)
		}
		return nil, domain.NewStoreError("Failed to load response", err)
	}

	questions, err := s.questionRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list questions", err)
	}

	return &dto.ResponseDetailResponse{
		Response:            toUserResponseResponse(response),
		TotalCorrectAnswers: response.TotalCorrect(),
		Questions:           toQuestionResponses(questions),
	}, nil
}

func (s *submissionService) ListResponses(ctx context.Context, quizID, ownerID string) (*dto.ResponseListResponse, error) {
	if _, err := s.quizRepo.GetQuizForOwner(ctx, quizID, ownerID); err != nil {
		return nil, quizLookupError(err, quizID)
	}

	responses, err := s.responseRepo.ListResponses(ctx, quizID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list responses", err)
	}

	resp := &dto.ResponseListResponse{
		QuizID:    quizID,
		Responses: make([]dto.UserResponseResponse, 0, len(responses)),
	}
	for _, r := range responses {
		resp.Responses = append(resp.Responses, toUserResponseResponse(r))
	}
	return resp, nil
}
