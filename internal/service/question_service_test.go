package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizlink/internal/domain"
	"quizlink/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []*domain.Question {
	return []*domain.Question{
		{ID: "q1", QuizID: "quiz-1", Text: "First?", Options: []string{"A", "B"}, Correct: "A", Position: 1},
		{ID: "q2", QuizID: "quiz-1", Text: "Second?", Options: []string{"C", "D"}, Correct: "D", Position: 2},
	}
}

func TestQuestionService_GetQuestionsForTaking_HidesAnswersAndCaches(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	cache, mr := newMiniredisCache(t)
	svc := NewQuestionService(quizRepo, questionRepo, cache, 10*time.Minute)
	ctx := context.Background()

	quizRepo.On("GetQuiz", mock.Anything, "quiz-1").Return(&domain.Quiz{ID: "quiz-1", Name: "Letters"}, nil).Once()
	questionRepo.On("ListQuestions", mock.Anything, "quiz-1").Return(sampleQuestions(), nil).Once()

	first, err := svc.GetQuestionsForTaking(ctx, "quiz-1")
	require.NoError(t, err)
	require.Len(t, first.Questions, 2)
	assert.Equal(t, "Letters", first.Name)
	assert.Equal(t, []string{"C", "D"}, first.Questions[1].Options)

	cached, err := mr.Get("quizlink:quiz:questions:quiz-1")
	require.NoError(t, err)
	assert.NotContains(t, cached, "correct")

	// Served from cache: repositories are not called again.
	second, err := svc.GetQuestionsForTaking(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	quizRepo.AssertExpectations(t)
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_GetQuestionsForTaking_NotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuestionService(quizRepo, new(MockQuestionRepository), nil, time.Minute)

	quizRepo.On("GetQuiz", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.GetQuestionsForTaking(context.Background(), "missing")
	assert.True(t, domain.HasCode(err, domain.CodeQuizNotFound))
}

func TestQuestionService_GetQuestionsForTaking_CacheErrorFallsThrough(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	cache := new(MockCache)
	svc := NewQuestionService(quizRepo, questionRepo, cache, time.Minute)

	cache.On("Get", mock.Anything, "quizlink:quiz:questions:quiz-1").Return("", errors.New("redis down"))
	cache.On("Set", mock.Anything, "quizlink:quiz:questions:quiz-1", mock.Anything, time.Minute).Return(errors.New("redis down"))
	quizRepo.On("GetQuiz", mock.Anything, "quiz-1").Return(&domain.Quiz{ID: "quiz-1", Name: "Letters"}, nil)
	questionRepo.On("ListQuestions", mock.Anything, "quiz-1").Return(sampleQuestions(), nil)

	resp, err := svc.GetQuestionsForTaking(context.Background(), "quiz-1")
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 2)
}

func TestQuestionService_MutationsInvalidateCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	cache, mr := newMiniredisCache(t)
	svc := NewQuestionService(quizRepo, questionRepo, cache, time.Minute)
	ctx := context.Background()
	key := "quizlink:quiz:questions:quiz-1"

	questionRepo.On("CreateQuestion", mock.Anything, mock.Anything, "owner-1").Return(nil).Once()
	require.NoError(t, mr.Set(key, "stale"))
	_, err := svc.CreateQuestion(ctx, "owner-1", &dto.CreateQuestionRequest{QuizID: "quiz-1", Text: "Q?", Options: []string{"A", "B"}, Correct: "B"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	questionRepo.On("UpdateQuestion", mock.Anything, mock.Anything, "owner-1").Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Question).QuizID = "quiz-1"
	}).Return(nil).Once()
	require.NoError(t, mr.Set(key, "stale"))
	_, err = svc.UpdateQuestion(ctx, "q1", "owner-1", &dto.UpdateQuestionRequest{Text: "Q?", Options: []string{"A", "B"}, Correct: "A"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	questionRepo.On("DeleteQuestion", mock.Anything, "q1", "owner-1").Return("quiz-1", nil).Once()
	require.NoError(t, mr.Set(key, "stale"))
	require.NoError(t, svc.DeleteQuestion(ctx, "q1", "owner-1"))
	assert.False(t, mr.Exists(key))
}

func TestQuestionService_CreateQuestion_Validation(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(new(MockQuizRepository), questionRepo, nil, time.Minute)

	_, err := svc.CreateQuestion(context.Background(), "owner-1", &dto.CreateQuestionRequest{
		QuizID: "quiz-1", Text: "Q?", Options: []string{"A", "B"}, Correct: "Z",
	})

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "correct", verrs[0].Field)
	questionRepo.AssertNotCalled(t, "CreateQuestion", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionService_NotOwner(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(quizRepo, questionRepo, nil, time.Minute)
	ctx := context.Background()

	questionRepo.On("CreateQuestion", mock.Anything, mock.Anything, "intruder").Return(domain.ErrNotFound)
	questionRepo.On("UpdateQuestion", mock.Anything, mock.Anything, "intruder").Return(domain.ErrNotFound)
	questionRepo.On("DeleteQuestion", mock.Anything, "q1", "intruder").Return("", domain.ErrNotFound)
	quizRepo.On("GetQuizForOwner", mock.Anything, "quiz-1", "intruder").Return(nil, domain.ErrNotFound)

	_, err := svc.CreateQuestion(ctx, "intruder", &dto.CreateQuestionRequest{QuizID: "quiz-1", Text: "Q?", Options: []string{"A", "B"}, Correct: "A"})
	assert.True(t, domain.HasCode(err, domain.CodeQuizNotFound))

	_, err = svc.UpdateQuestion(ctx, "q1", "intruder", &dto.UpdateQuestionRequest{Text: "Q?", Options: []string{"A", "B"}, Correct: "A"})
	assert.True(t, domain.HasCode(err, domain.CodeQuestionNotFound))

	err = svc.DeleteQuestion(ctx, "q1", "intruder")
	assert.True(t, domain.HasCode(err, domain.CodeQuestionNotFound))

	_, err = svc.ListQuestionsForOwner(ctx, "quiz-1", "intruder")
	assert.True(t, domain.HasCode(err, domain.CodeQuizNotFound))
	questionRepo.AssertNotCalled(t, "ListQuestions", mock.Anything, mock.Anything)
}

func TestQuestionService_ListQuestionsForOwner(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(quizRepo, questionRepo, nil, time.Minute)

	quizRepo.On("GetQuizForOwner", mock.Anything, "quiz-1", "owner-1").Return(&domain.Quiz{ID: "quiz-1"}, nil)
	questionRepo.On("ListQuestions", mock.Anything, "quiz-1").Return(sampleQuestions(), nil)

	questions, err := svc.ListQuestionsForOwner(context.Background(), "quiz-1", "owner-1")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "D", questions[1].Correct)
}
