package dto

import "time"

// SubmitAnswersRequest is a respondent's full submission. QuestionIDs[i] is answered by Answers[i].
// @Description Request body for submitting quiz answers
type SubmitAnswersRequest struct {
	QuizID      string   `json:"quizId" validate:"required"`
	Name        string   `json:"name" validate:"required,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	QuestionIDs []string `json:"questionIds" validate:"required,min=1"`
	Answers     []string `json:"answers" validate:"required,min=1"`
}

// AnswerResultResponse is the scored outcome of one answer
type AnswerResultResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Correct    bool   `json:"correct"`
}

// UserResponseResponse represents a stored submission
// @Description Scored quiz submission
type UserResponseResponse struct {
	ID                  string                 `json:"id"`
	QuizID              string                 `json:"quizId"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	Results             []AnswerResultResponse `json:"results"`
	TotalCorrectAnswers int                    `json:"totalCorrectAnswers"`
	Abandoned           bool                   `json:"abandoned"`
	CreatedAt           time.Time              `json:"createdAt"`
}

// SubmitAnswersResponse wraps the scored submission
type SubmitAnswersResponse struct {
	Data UserResponseResponse `json:"data"`
}

// ResponseDetailResponse is the results view: the submission plus the answer key
type ResponseDetailResponse struct {
	Response            UserResponseResponse `json:"response"`
	TotalCorrectAnswers int                  `json:"totalCorrectAnswers"`
	Questions           []QuestionResponse   `json:"questions"`
}

// ResponseListResponse lists a quiz's submissions for its owners
type ResponseListResponse struct {
	QuizID    string                 `json:"quizId"`
	Responses []UserResponseResponse `json:"responses"`
}
