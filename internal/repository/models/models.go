package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Name      sql.NullString `db:"name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Quiz represents a row of the quizzes table. The counts are only selected by list queries.
type Quiz struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	CreatedBy     string         `db:"created_by"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	QuestionCount int            `db:"question_count"`
	ResponseCount int            `db:"response_count"`
}

// Question represents a row of the questions table.
type Question struct {
	ID        string      `db:"id"`
	QuizID    string      `db:"quiz_id"`
	Text      string      `db:"text"`
	Options   StringSlice `db:"options"`
	Correct   string      `db:"correct"`
	Position  int         `db:"position"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// UserResponse represents a row of the user_responses table.
type UserResponse struct {
	ID        string        `db:"id"`
	QuizID    string        `db:"quiz_id"`
	Name      string        `db:"name"`
	Email     string        `db:"email"`
	Results   AnswerResults `db:"results"`
	Abandoned bool          `db:"abandoned"`
	CreatedAt time.Time     `db:"created_at"`
}

// AbandonEvent represents a row of the abandon_events table.
type AbandonEvent struct {
	ID        string         `db:"id"`
	QuizID    string         `db:"quiz_id"`
	Email     string         `db:"email"`
	UserID    sql.NullString `db:"user_id"`
	Count     int            `db:"count"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
