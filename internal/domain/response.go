package domain

import "time"

// AnswerResult is the scored outcome of one submitted answer, kept in submission order.
type AnswerResult struct {
	QuestionID string
	Answer     string
	Correct    bool
}

// UserResponse is a respondent's scored submission for a quiz.
type UserResponse struct {
	ID        string
	QuizID    string
	Name      string
	Email     string
	Results   []AnswerResult
	Abandoned bool
	CreatedAt time.Time
}

// TotalCorrect counts the correct entries. It is always derived, never stored.
func (r *UserResponse) TotalCorrect() int {
	total := 0
	for _, res := range r.Results {
		if res.Correct {
			total++
		}
	}
	return total
}

// AbandonEvent counts how often a respondent left a quiz without submitting.
type AbandonEvent struct {
	ID        string
	QuizID    string
	Email     string
	UserID    string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
