package domain

import (
	"strings"
	"time"
)

const (
	MinQuestionOptions = 2
	MaxQuestionOptions = 5
	MaxQuizNameLength  = 200
)

// Quiz is a named collection of questions owned by one or more users.
type Quiz struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by list queries only.
	QuestionCount int
	ResponseCount int
}

// NewQuiz creates a new Quiz instance
func NewQuiz(ownerID, name, description string) *Quiz {
	now := time.Now()
	return &Quiz{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if q.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	} else if len(q.Name) > MaxQuizNameLength {
		errs = append(errs, NewOutOfRangeError("name", len(q.Name), 1, MaxQuizNameLength))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Question is a multiple-choice question. Correct holds the option value, not its index.
type Question struct {
	ID        string
	QuizID    string
	Text      string
	Options   []string
	Correct   string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the quiz reference and the question content.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.QuizID) == "" {
		errs = append(errs, NewMissingFieldError("quizId"))
	}
	errs = append(errs, q.contentErrors()...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateContent checks that the question has 2-5 distinct options and that Correct is one of them.
func (q *Question) ValidateContent() error {
	if errs := q.contentErrors(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (q *Question) contentErrors() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, NewMissingFieldError("text"))
	}
	if n := len(q.Options); n < MinQuestionOptions || n > MaxQuestionOptions {
		errs = append(errs, NewOutOfRangeError("options", n, MinQuestionOptions, MaxQuestionOptions))
	} else {
		seen := make(map[string]struct{}, n)
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, NewFieldError("options", "options must not be empty"))
				break
			}
			if _, dup := seen[opt]; dup {
				errs = append(errs, NewFieldError("options", "options must be distinct"))
				break
			}
			seen[opt] = struct{}{}
		}
	}
	if q.Correct == "" {
		errs = append(errs, NewMissingFieldError("correct"))
	} else if !q.HasOption(q.Correct) {
		errs = append(errs, NewFieldError("correct", "correct answer must match one of the options"))
	}
	return errs
}

// HasOption reports whether value is one of the question's options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// IsCorrect reports whether the submitted value matches the answer key exactly.
func (q *Question) IsCorrect(answer string) bool {
	return answer != "" && q.Correct == answer
}

// PublicQuestion is the respondent-facing view of a question: no answer key, no timestamps.
type PublicQuestion struct {
	ID       string
	QuizID   string
	Text     string
	Options  []string
	Position int
}

// Public strips the answer key from the question.
func (q *Question) Public() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{
		ID:       q.ID,
		QuizID:   q.QuizID,
		Text:     q.Text,
		Options:  options,
		Position: q.Position,
	}
}
