package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizlink/internal/domain"
	"quizlink/internal/repository/models"
	"quizlink/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `qs.id, qs.quiz_id, qs.text, qs.options, qs.correct, qs.position, qs.created_at, qs.updated_at`

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	options := make([]string, len(m.Options))
	copy(options, m.Options)
	return &domain.Question{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Text:      m.Text,
		Options:   options,
		Correct:   m.Correct,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ListQuestions returns the quiz's questions in display order.
func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context, quizID string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions qs
	          WHERE qs.quiz_id = $1
	          ORDER BY qs.position, qs.created_at`

	var rows []models.Question
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// GetQuestionInQuiz returns domain.ErrNotFound unless the question belongs to quizID.
func (r *sqlxQuestionRepository) GetQuestionInQuiz(ctx context.Context, questionID, quizID string) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions qs WHERE qs.id = $1 AND qs.quiz_id = $2`

	var m models.Question
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, questionID, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question %s: %w", questionID, err)
	}
	return toDomainQuestion(&m), nil
}

// CreateQuestion appends the question to its quiz. The insert only happens when ownerID owns
// the quiz; otherwise domain.ErrNotFound is returned.
func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question, ownerID string) error {
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()

	query := `INSERT INTO questions (id, quiz_id, text, options, correct, position, created_at, updated_at)
	          SELECT $1, $2, $3, $4::jsonb, $5,
	                 COALESCE((SELECT MAX(position) FROM questions WHERE quiz_id = $2), 0) + 1,
	                 $6::timestamptz, $6::timestamptz
	          WHERE ` + ownedByFilter("$2", "$7") + `
	          RETURNING position`

	var position int
	err := GetExecutor(ctx, r.db).GetContext(ctx, &position, query,
		question.ID, question.QuizID, question.Text, models.StringSlice(question.Options), question.Correct, now, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to create question: %w", err)
	}

	question.Position = position
	question.CreatedAt = now
	question.UpdatedAt = now
	return nil
}

// UpdateQuestion rewrites text, options and answer key. The question stays in its quiz.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question, ownerID string) error {
	query := `UPDATE questions qs SET text = $1, options = $2::jsonb, correct = $3, updated_at = $4
	          WHERE qs.id = $5 AND ` + ownedByFilter("qs.quiz_id", "$6") + `
	          RETURNING ` + questionColumns

	var m models.Question
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		question.Text, models.StringSlice(question.Options), question.Correct, time.Now(), question.ID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update question %s: %w", question.ID, err)
	}
	*question = *toDomainQuestion(&m)
	return nil
}

func (r *sqlxQuestionRepository) DeleteQuestion(ctx context.Context, questionID, ownerID string) (string, error) {
	query := `DELETE FROM questions qs
	          WHERE qs.id = $1 AND ` + ownedByFilter("qs.quiz_id", "$2") + `
	          RETURNING qs.quiz_id`

	var quizID string
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &quizID, query, questionID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to delete question %s: %w", questionID, err)
	}
	return quizID, nil
}
