package handler

import (
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/middleware"
	"quizlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler handles answer submission and the results views
type SubmissionHandler struct {
	service service.SubmissionService
}

func NewSubmissionHandler(service service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// CheckAnswers godoc
// @Summary Submit answers to a quiz
// @Description Scores every answer and stores one response per quiz and email. A second submission is rejected with 403.
// @Tags responses
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswersRequest true "Answers"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/questions/check [post]
func (h *SubmissionHandler) CheckAnswers(c *fiber.Ctx) error {
	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Submit(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitAnswersResponse{Data: *resp})
}

// GetResponse godoc
// @Summary Get a submission's results
// @Description The respondent's results view, including the correct answers
// @Tags responses
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param responseId path string true "Response ID"
// @Success 200 {object} dto.ResponseDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/responses/{quizId}/{responseId} [get]
func (h *SubmissionHandler) GetResponse(c *fiber.Ctx) error {
	resp, err := h.service.GetResponse(c.UserContext(), c.Params("quizId"), c.Params("responseId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListResponses godoc
// @Summary List a quiz's submissions
// @Tags responses
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.ResponseListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/responses/{quizId} [get]
func (h *SubmissionHandler) ListResponses(c *fiber.Ctx) error {
	resp, err := h.service.ListResponses(c.UserContext(), c.Params("quizId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
