package handler

import (
	"strings"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/middleware"
	"quizlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AbandonQueue accepts abandon events without blocking the request.
type AbandonQueue interface {
	Enqueue(quizID, email, userID string) bool
}

// AbandonHandler handles abandonment reporting
type AbandonHandler struct {
	service service.AbandonService
	queue   AbandonQueue
}

func NewAbandonHandler(service service.AbandonService, queue AbandonQueue) *AbandonHandler {
	return &AbandonHandler{service: service, queue: queue}
}

// RecordAbandon godoc
// @Summary Report an abandoned quiz
// @Description Best-effort counter. 204 when the event was accepted, 202 when it was dropped.
// @Tags abandon
// @Accept json
// @Param event body dto.AbandonRequest true "Abandon event"
// @Success 204 {string} string "No Content"
// @Success 202 {string} string "Event dropped"
// @Failure 400 {object} dto.ErrorResponse
// @Router /quiz/abandon [post]
func (h *AbandonHandler) RecordAbandon(c *fiber.Ctx) error {
	var req dto.AbandonRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	var errs domain.ValidationErrors
	if strings.TrimSpace(req.QuizID) == "" {
		errs = append(errs, domain.NewMissingFieldError("quizId"))
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	}
	if len(errs) > 0 {
		return errs
	}

	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}
	if !h.queue.Enqueue(req.QuizID, req.Email, userID) {
		return c.SendStatus(fiber.StatusAccepted)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAbandonInfo godoc
// @Summary Abandonment counters for a quiz
// @Tags abandon
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.AbandonInfoResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/abandon/{quizId} [get]
func (h *AbandonHandler) GetAbandonInfo(c *fiber.Ctx) error {
	resp, err := h.service.GetAbandonInfo(c.UserContext(), c.Params("quizId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
