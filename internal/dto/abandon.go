package dto

import "time"

// AbandonRequest reports that a respondent left a quiz without submitting
// @Description Request body for recording an abandoned quiz
type AbandonRequest struct {
	QuizID string `json:"quizId" validate:"required"`
	Email  string `json:"email" validate:"required"`
	UserID string `json:"userId"`
}

// AbandonEventResponse is one respondent's abandon counter
type AbandonEventResponse struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quizId"`
	Email     string    `json:"email"`
	UserID    string    `json:"userId,omitempty"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AbandonInfoResponse aggregates abandonment for a quiz
type AbandonInfoResponse struct {
	QuizID        string                 `json:"quizId"`
	TotalAbandons int                    `json:"totalAbandons"`
	Events        []AbandonEventResponse `json:"events"`
}
