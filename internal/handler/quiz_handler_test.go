package handler_test

import (
	"context"
	"testing"

	"quizlink/internal/domain"
	"quizlink/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizHandler_RequiresAuth(t *testing.T) {
	s := newTestServer()
	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/quiz"},
		{"POST", "/api/quiz"},
		{"POST", "/api/quiz/create"},
		{"GET", "/api/quiz/" + testQuizID},
		{"PUT", "/api/quiz/" + testQuizID},
		{"DELETE", "/api/quiz/" + testQuizID},
	} {
		resp := s.do(t, tc.method, tc.path, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, tc.method+" "+tc.path)
	}
}

func TestQuizHandler_ListQuizzes_UsesAuthenticatedOwner(t *testing.T) {
	s := newTestServer()
	s.quiz.ListQuizzesFunc = func(ctx context.Context, gotOwner string) (*dto.QuizListResponse, error) {
		assert.Equal(t, ownerID, gotOwner)
		return &dto.QuizListResponse{Quizzes: []dto.QuizResponse{{ID: testQuizID, Name: "Capitals", QuestionCount: 3}}}, nil
	}

	// A userId in the body is ignored in favour of the token's identity.
	resp := s.do(t, "POST", "/api/quiz", map[string]string{"userId": "someone-else"}, ownerToken)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.QuizListResponse
	decode(t, resp, &list)
	require.Len(t, list.Quizzes, 1)
	assert.Equal(t, 3, list.Quizzes[0].QuestionCount)
}

func TestQuizHandler_CreateQuiz(t *testing.T) {
	s := newTestServer()
	s.quiz.CreateQuizFunc = func(ctx context.Context, gotOwner string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
		if req.Name == "Taken" {
			return nil, domain.NewConflictError("A quiz with this name already exists")
		}
		return &dto.QuizResponse{ID: testQuizID, Name: req.Name, CreatedBy: gotOwner}, nil
	}

	resp := s.do(t, "POST", "/api/quiz/create", dto.CreateQuizRequest{Name: "Capitals"}, ownerToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.QuizResponse
	decode(t, resp, &created)
	assert.Equal(t, ownerID, created.CreatedBy)

	resp = s.do(t, "POST", "/api/quiz/create", dto.CreateQuizRequest{}, ownerToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, "POST", "/api/quiz/create", `{"name":`, ownerToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, "POST", "/api/quiz/create", dto.CreateQuizRequest{Name: "Taken"}, ownerToken)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestQuizHandler_ForeignQuizIsNotFound(t *testing.T) {
	s := newTestServer()
	s.quiz.GetQuizFunc = func(ctx context.Context, quizID, gotOwner string) (*dto.QuizResponse, error) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	s.quiz.UpdateQuizFunc = func(ctx context.Context, quizID, gotOwner string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	s.quiz.DeleteQuizFunc = func(ctx context.Context, quizID, gotOwner string) error {
		return domain.NewQuizNotFoundError(quizID)
	}

	resp := s.do(t, "GET", "/api/quiz/"+testQuizID, nil, ownerToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body errorBody
	decode(t, resp, &body)
	assert.Equal(t, "QUIZ_NOT_FOUND", body.Code)
	assert.Equal(t, testQuizID, body.Context["quiz_id"])

	resp = s.do(t, "PUT", "/api/quiz/"+testQuizID, dto.UpdateQuizRequest{Name: "Mine"}, ownerToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = s.do(t, "DELETE", "/api/quiz/"+testQuizID, nil, ownerToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizHandler_DeleteQuiz(t *testing.T) {
	s := newTestServer()
	s.quiz.DeleteQuizFunc = func(ctx context.Context, quizID, gotOwner string) error {
		assert.Equal(t, testQuizID, quizID)
		assert.Equal(t, ownerID, gotOwner)
		return nil
	}

	resp := s.do(t, "DELETE", "/api/quiz/"+testQuizID, nil, ownerToken)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(t, "DELETE", "/api/quiz/not-a-ulid", nil, ownerToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
