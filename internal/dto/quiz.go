package dto

import "time"

// CreateQuizRequest represents the body for creating a quiz
// @Description Request body for creating a quiz
type CreateQuizRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateQuizRequest represents the body for renaming or re-describing a quiz
type UpdateQuizRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	QuestionCount int       `json:"questionCount"`
	ResponseCount int       `json:"responseCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// QuizListResponse is the owner's dashboard list
type QuizListResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
}

// CreateQuestionRequest represents the body for adding a question to a quiz
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	QuizID  string   `json:"quizId" validate:"required"`
	Text    string   `json:"text" validate:"required,max=1000"`
	Options []string `json:"options" validate:"required,min=2,max=5,dive,required"`
	Correct string   `json:"correct" validate:"required"`
}

// UpdateQuestionRequest represents the body for editing a question
type UpdateQuestionRequest struct {
	Text    string   `json:"text" validate:"required,max=1000"`
	Options []string `json:"options" validate:"required,min=2,max=5,dive,required"`
	Correct string   `json:"correct" validate:"required"`
}

// QuestionResponse is the owner's view of a question, answer key included
type QuestionResponse struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quizId"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Correct   string    `json:"correct"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicQuestionResponse is the respondent's view of a question
type PublicQuestionResponse struct {
	ID       string   `json:"id"`
	QuizID   string   `json:"quizId"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Position int      `json:"position"`
}

// QuizForTakingResponse carries everything a respondent needs to render a quiz
// @Description Quiz with questions, without correct answers
type QuizForTakingResponse struct {
	QuizID      string                   `json:"quizId"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Questions   []PublicQuestionResponse `json:"questions"`
}
