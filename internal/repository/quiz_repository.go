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

const quizColumns = `q.id, q.name, q.description, q.created_by, q.created_at, q.updated_at`

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description.String,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		QuestionCount: m.QuestionCount,
		ResponseCount: m.ResponseCount,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:          q.ID,
		Name:        q.Name,
		Description: util.StringToNullString(q.Description),
		CreatedBy:   q.CreatedBy,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// ListQuizzesByOwner returns every quiz the user owns, newest first, with question and response counts.
func (r *sqlxQuizRepository) ListQuizzesByOwner(ctx context.Context, ownerID string) ([]*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + `,
	            (SELECT COUNT(*) FROM questions qs WHERE qs.quiz_id = q.id) AS question_count,
	            (SELECT COUNT(*) FROM user_responses ur WHERE ur.quiz_id = q.id AND ur.abandoned = FALSE) AS response_count
	          FROM quizzes q
	          JOIN quiz_owners o ON o.quiz_id = q.id
	          WHERE o.user_id = $1
	          ORDER BY q.created_at DESC`

	var rows []models.Quiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for owner %s: %w", ownerID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

// GetQuizForOwner returns domain.ErrNotFound when the quiz is missing or not owned by ownerID.
func (r *sqlxQuizRepository) GetQuizForOwner(ctx context.Context, quizID, ownerID string) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes q
	          WHERE q.id = $1 AND ` + ownedByFilter("q.id", "$2")

	var m models.Quiz
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, quizID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return toDomainQuiz(&m), nil
}

// GetQuiz looks a quiz up without an ownership filter. Used by respondent-facing flows.
func (r *sqlxQuizRepository) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes q WHERE q.id = $1`

	var m models.Quiz
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return toDomainQuiz(&m), nil
}

// CreateQuiz inserts the quiz row only. Callers add the owner link in the same transaction.
func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	now := time.Now()
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = now
	}
	quiz.UpdatedAt = now

	query := `INSERT INTO quizzes (id, name, description, created_by, created_at, updated_at)
	          VALUES (:id, :name, :description, :created_by, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainQuiz(quiz)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quiz named %q", domain.ErrDuplicate, quiz.Name)
		}
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) AddOwner(ctx context.Context, quizID, userID string) error {
	query := `INSERT INTO quiz_owners (quiz_id, user_id, created_at) VALUES ($1, $2, $3)
	          ON CONFLICT (quiz_id, user_id) DO NOTHING`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, quizID, userID, time.Now()); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to add owner to quiz %s: %w", quizID, err)
	}
	return nil
}

// UpdateQuiz changes name and description, refreshing quiz from the stored row.
func (r *sqlxQuizRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz, ownerID string) error {
	query := `UPDATE quizzes q SET name = $1, description = $2, updated_at = $3
	          WHERE q.id = $4 AND ` + ownedByFilter("q.id", "$5") + `
	          RETURNING ` + quizColumns

	var m models.Quiz
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		quiz.Name, util.StringToNullString(quiz.Description), time.Now(), quiz.ID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quiz named %q", domain.ErrDuplicate, quiz.Name)
		}
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	*quiz = *toDomainQuiz(&m)
	return nil
}

// DeleteQuiz removes the quiz. Questions, responses, owners and abandon events cascade.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	query := `DELETE FROM quizzes q WHERE q.id = $1 AND ` + ownedByFilter("q.id", "$2")

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, quizID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", quizID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
