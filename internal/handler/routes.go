package handler

import (
	"quizlink/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth       *AuthHandler
	Quiz       *QuizHandler
	Question   *QuestionHandler
	Submission *SubmissionHandler
	Abandon    *AbandonHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API. Literal paths are registered before parameterised siblings.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, ids *middleware.ValidationMiddleware) {
	protected := middleware.Protected(tokens)
	optional := middleware.OptionalAuth(tokens)

	app.Get("/health", h.Health.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Get("/google", h.Auth.GoogleLogin)
	authGroup.Post("/google", h.Auth.GoogleLogin)
	authGroup.Get("/google/callback", h.Auth.GoogleCallback)
	authGroup.Get("/profile", optional, h.Auth.Profile)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", protected, h.Auth.Logout)

	quiz := api.Group("/quiz")

	questions := quiz.Group("/questions")
	questions.Post("/check", h.Submission.CheckAnswers)
	questions.Post("/create", protected, h.Question.CreateQuestion)
	questions.Get("/quiz/:id", ids.ValidateIDParams("id"), h.Question.GetQuestionsForTaking)
	questions.Get("/:quizId", protected, ids.ValidateIDParams("quizId"), h.Question.ListQuestions)
	questions.Put("/:id", protected, ids.ValidateIDParams("id"), h.Question.UpdateQuestion)
	questions.Delete("/:id", protected, ids.ValidateIDParams("id"), h.Question.DeleteQuestion)

	responses := quiz.Group("/responses")
	responses.Get("/:quizId/:responseId", ids.ValidateIDParams("quizId", "responseId"), h.Submission.GetResponse)
	responses.Get("/:quizId", protected, ids.ValidateIDParams("quizId"), h.Submission.ListResponses)

	abandon := quiz.Group("/abandon")
	abandon.Post("/", optional, h.Abandon.RecordAbandon)
	abandon.Get("/:quizId", protected, ids.ValidateIDParams("quizId"), h.Abandon.GetAbandonInfo)

	quiz.Get("/", protected, h.Quiz.ListQuizzes)
	quiz.Post("/", protected, h.Quiz.ListQuizzes)
	quiz.Post("/create", protected, h.Quiz.CreateQuiz)
	quiz.Get("/:id", protected, ids.ValidateIDParams("id"), h.Quiz.GetQuiz)
	quiz.Put("/:id", protected, ids.ValidateIDParams("id"), h.Quiz.UpdateQuiz)
	quiz.Delete("/:id", protected, ids.ValidateIDParams("id"), h.Quiz.DeleteQuiz)
}
