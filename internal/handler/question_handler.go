package handler

import (
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/middleware"
	"quizlink/internal/service"
	"quizlink/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question management and the respondent question view
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

func NewQuestionHandler(service service.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validator,
	}
}

// ListQuestions godoc
// @Summary List a quiz's questions with answers
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "Quiz ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/questions/{quizId} [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.service.ListQuestionsForOwner(c.UserContext(), c.Params("quizId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// GetQuestionsForTaking godoc
// @Summary Get a quiz for answering
// @Description Public view of a quiz: questions and options without the answer key
// @Tags questions
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizForTakingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/questions/quiz/{id} [get]
func (h *QuestionHandler) GetQuestionsForTaking(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestionsForTaking(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param question body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/questions/create [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	resp, err := h.service.UpdateQuestion(c.UserContext(), c.Params("id"), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.DeleteQuestion(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
