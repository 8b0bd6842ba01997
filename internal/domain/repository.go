package domain

import "context"

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}

// QuizRepository persists quizzes. Every owner-scoped call filters on ownerID and returns
// ErrNotFound when no row matched, whether the quiz is missing or owned by someone else.
type QuizRepository interface {
	ListQuizzesByOwner(ctx context.Context, ownerID string) ([]*Quiz, error)
	GetQuizForOwner(ctx context.Context, quizID, ownerID string) (*Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (*Quiz, error)
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	AddOwner(ctx context.Context, quizID, userID string) error
	UpdateQuiz(ctx context.Context, quiz *Quiz, ownerID string) error
	DeleteQuiz(ctx context.Context, quizID, ownerID string) error
}

// QuestionRepository persists questions. Mutations are scoped through quiz ownership.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, quizID string) ([]*Question, error)
	GetQuestionInQuiz(ctx context.Context, questionID, quizID string) (*Question, error)
	CreateQuestion(ctx context.Context, question *Question, ownerID string) error
	UpdateQuestion(ctx context.Context, question *Question, ownerID string) error
	// DeleteQuestion returns the quiz the deleted question belonged to.
	DeleteQuestion(ctx context.Context, questionID, ownerID string) (string, error)
}

// ResponseRepository persists respondent submissions.
type ResponseRepository interface {
	// CreateResponse returns ErrDuplicate when the respondent already has an active response.
	CreateResponse(ctx context.Context, response *UserResponse) error
	HasActiveResponse(ctx context.Context, quizID, email string) (bool, error)
	GetResponse(ctx context.Context, quizID, responseID string) (*UserResponse, error)
	ListResponses(ctx context.Context, quizID string) ([]*UserResponse, error)
}

// AbandonRepository persists abandonment counters.
type AbandonRepository interface {
	// IncrementAbandon creates the (quiz, email) event with count 1 or bumps its count.
	IncrementAbandon(ctx context.Context, event *AbandonEvent) (*AbandonEvent, error)
	ListAbandonEvents(ctx context.Context, quizID string) ([]*AbandonEvent, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
