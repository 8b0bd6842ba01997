package handler_test

import (
	"context"
	"time"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/handler"
	"quizlink/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const (
	testQuizID     = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"
	testQuestionID = "01HGZ8VNRYXS8QKNJV5GRWPWDR"
	testResponseID = "01HGZ8VNRYXS8QKNJV5GRWPWDS"
	ownerID        = "01HGZ8VNRYXS8QKNJV5GRWPWDT"
	ownerToken     = "owner-access-token"
)

// --- Manual Mocks ---

type MockAuthService struct {
	GetGoogleLoginURLFunc    func(state string) string
	HandleGoogleCallbackFunc func(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.User, error)
	CompleteLoginFunc        func(ctx context.Context, profile *dto.GoogleUserInfo) (*domain.User, error)
	GetProfileFunc           func(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	CreateJWTFunc            func(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	ValidateJWTFunc          func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	RefreshTokenFunc         func(ctx context.Context, refreshTokenString string) (string, string, error)
	LogoutFunc               func(ctx context.Context, claims *dto.AuthClaims) error
}

func (m *MockAuthService) GetGoogleLoginURL(state string) string {
	if m.GetGoogleLoginURLFunc != nil {
		return m.GetGoogleLoginURLFunc(state)
	}
	panic("MockAuthService.GetGoogleLoginURLFunc not implemented")
}
func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.User, error) {
	if m.HandleGoogleCallbackFunc != nil {
		return m.HandleGoogleCallbackFunc(ctx, code, receivedState, expectedState)
	}
	panic("MockAuthService.HandleGoogleCallbackFunc not implemented")
}
func (m *MockAuthService) CompleteLogin(ctx context.Context, profile *dto.GoogleUserInfo) (*domain.User, error) {
	if m.CompleteLoginFunc != nil {
		return m.CompleteLoginFunc(ctx, profile)
	}
	panic("MockAuthService.CompleteLoginFunc not implemented")
}
func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	panic("MockAuthService.GetProfileFunc not implemented")
}
func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	if m.CreateJWTFunc != nil {
		return m.CreateJWTFunc(ctx, user, ttl, tokenType)
	}
	panic("MockAuthService.CreateJWTFunc not implemented")
}

// ValidateJWT accepts ownerToken unless ValidateJWTFunc overrides it.
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	if tokenString == ownerToken {
		return &dto.AuthClaims{UserID: ownerID, Email: "owner@example.com", TokenType: "access"}, nil
	}
	return nil, domain.NewUnauthorizedError("invalid token")
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshTokenString)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}
func (m *MockAuthService) Logout(ctx context.Context, claims *dto.AuthClaims) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, claims)
	}
	panic("MockAuthService.LogoutFunc not implemented")
}

type MockQuizService struct {
	ListQuizzesFunc func(ctx context.Context, ownerID string) (*dto.QuizListResponse, error)
	GetQuizFunc     func(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error)
	CreateQuizFunc  func(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuizFunc  func(ctx context.Context, quizID, ownerID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuizFunc  func(ctx context.Context, quizID, ownerID string) error
}

func (m *MockQuizService) ListQuizzes(ctx context.Context, ownerID string) (*dto.QuizListResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx, ownerID)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID, ownerID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) CreateQuiz(ctx context.Context, ownerID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, ownerID, req)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}
func (m *MockQuizService) UpdateQuiz(ctx context.Context, quizID, ownerID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	if m.UpdateQuizFunc != nil {
		return m.UpdateQuizFunc(ctx, quizID, ownerID, req)
	}
	panic("MockQuizService.UpdateQuizFunc not implemented")
}
func (m *MockQuizService) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, quizID, ownerID)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}

type MockQuestionService struct {
	ListQuestionsForOwnerFunc func(ctx context.Context, quizID, ownerID string) ([]dto.QuestionResponse, error)
	GetQuestionsForTakingFunc func(ctx context.Context, quizID string) (*dto.QuizForTakingResponse, error)
	CreateQuestionFunc        func(ctx context.Context, ownerID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestionFunc        func(ctx context.Context, questionID, ownerID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestionFunc        func(ctx context.Context, questionID, ownerID string) error
}

func (m *MockQuestionService) ListQuestionsForOwner(ctx context.Context, quizID, ownerID string) ([]dto.QuestionResponse, error) {
	if m.ListQuestionsForOwnerFunc != nil {
		return m.ListQuestionsForOwnerFunc(ctx, quizID, ownerID)
	}
	panic("MockQuestionService.ListQuestionsForOwnerFunc not implemented")
}
func (m *MockQuestionService) GetQuestionsForTaking(ctx context.Context, quizID string) (*dto.QuizForTakingResponse, error) {
	if m.GetQuestionsForTakingFunc != nil {
		return m.GetQuestionsForTakingFunc(ctx, quizID)
	}
	panic("MockQuestionService.GetQuestionsForTakingFunc not implemented")
}
func (m *MockQuestionService) CreateQuestion(ctx context.Context, ownerID string, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, ownerID, req)
	}
	panic("MockQuestionService.CreateQuestionFunc not implemented")
}
func (m *MockQuestionService) UpdateQuestion(ctx context.Context, questionID, ownerID string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, questionID, ownerID, req)
	}
	panic("MockQuestionService.UpdateQuestionFunc not implemented")
}
func (m *MockQuestionService) DeleteQuestion(ctx context.Context, questionID, ownerID string) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, questionID, ownerID)
	}
	panic("MockQuestionService.DeleteQuestionFunc not implemented")
}

type MockSubmissionService struct {
	SubmitFunc        func(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserResponseResponse, error)
	GetResponseFunc   func(ctx context.Context, quizID, responseID string) (*dto.ResponseDetailResponse, error)
	ListResponsesFunc func(ctx context.Context, quizID, ownerID string) (*dto.ResponseListResponse, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserResponseResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	panic("MockSubmissionService.SubmitFunc not implemented")
}
func (m *MockSubmissionService) GetResponse(ctx context.Context, quizID, responseID string) (*dto.ResponseDetailResponse, error) {
	if m.GetResponseFunc != nil {
		return m.GetResponseFunc(ctx, quizID, responseID)
	}
	panic("MockSubmissionService.GetResponseFunc not implemented")
}
func (m *MockSubmissionService) ListResponses(ctx context.Context, quizID, ownerID string) (*dto.ResponseListResponse, error) {
	if m.ListResponsesFunc != nil {
		return m.ListResponsesFunc(ctx, quizID, ownerID)
	}
	panic("MockSubmissionService.ListResponsesFunc not implemented")
}

type MockAbandonService struct {
	RecordAbandonFunc  func(ctx context.Context, quizID, email, userID string) bool
	GetAbandonInfoFunc func(ctx context.Context, quizID, ownerID string) (*dto.AbandonInfoResponse, error)
}

func (m *MockAbandonService) RecordAbandon(ctx context.Context, quizID, email, userID string) bool {
	if m.RecordAbandonFunc != nil {
		return m.RecordAbandonFunc(ctx, quizID, email, userID)
	}
	panic("MockAbandonService.RecordAbandonFunc not implemented")
}
func (m *MockAbandonService) GetAbandonInfo(ctx context.Context, quizID, ownerID string) (*dto.AbandonInfoResponse, error) {
	if m.GetAbandonInfoFunc != nil {
		return m.GetAbandonInfoFunc(ctx, quizID, ownerID)
	}
	panic("MockAbandonService.GetAbandonInfoFunc not implemented")
}

type MockAbandonQueue struct {
	EnqueueFunc func(quizID, email, userID string) bool
}

func (m *MockAbandonQueue) Enqueue(quizID, email, userID string) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(quizID, email, userID)
	}
	panic("MockAbandonQueue.EnqueueFunc not implemented")
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error { return m.Err }

type mockCache struct {
	pingErr error
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}
func (m *mockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}
func (m *mockCache) Delete(ctx context.Context, key string) error { return nil }
func (m *mockCache) Ping(ctx context.Context) error { return m.pingErr }

// testServer bundles the mocks behind a fully routed app.
type testServer struct {
	auth       *MockAuthService
	quiz       *MockQuizService
	question   *MockQuestionService
	submission *MockSubmissionService
	abandon    *MockAbandonService
	queue      *MockAbandonQueue
	db         *MockPinger
	cache      *mockCache
	app        *fiber.App
}

func newTestServer() *testServer {
	s := &testServer{
		auth:       &MockAuthService{},
		quiz:       &MockQuizService{},
		question:   &MockQuestionService{},
		submission: &MockSubmissionService{},
		abandon:    &MockAbandonService{},
		queue:      &MockAbandonQueue{},
		db:         &MockPinger{},
		cache:      &mockCache{},
	}
	v := validationFor()
	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(s.app, handler.Handlers{
		Auth:       handler.NewAuthHandler(s.auth, v, testServerConfig),
		Quiz:       handler.NewQuizHandler(s.quiz, v),
		Question:   handler.NewQuestionHandler(s.question, v),
		Submission: handler.NewSubmissionHandler(s.submission),
		Abandon:    handler.NewAbandonHandler(s.abandon, s.queue),
		Health:     handler.NewHealthHandler(s.db, s.cache),
	}, s.auth, middleware.NewValidationMiddleware(v))
	return s
}
