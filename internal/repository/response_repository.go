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

const responseColumns = `id, quiz_id, name, email, results, abandoned, created_at`

// sqlxResponseRepository implements domain.ResponseRepository using sqlx.
type sqlxResponseRepository struct {
	db *sqlx.DB
}

// NewSQLXResponseRepository creates a new instance of sqlxResponseRepository.
func NewSQLXResponseRepository(db *sqlx.DB) domain.ResponseRepository {
	return &sqlxResponseRepository{db: db}
}

func toDomainResponse(m *models.UserResponse) *domain.UserResponse {
	if m == nil {
		return nil
	}
	results := make([]domain.AnswerResult, 0, len(m.Results))
	for _, res := range m.Results {
		results = append(results, domain.AnswerResult{
			QuestionID: res.QuestionID,
			Answer:     res.Answer,
			Correct:    res.Correct,
		})
	}
	return &domain.UserResponse{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Name:      m.Name,
		Email:     m.Email,
		Results:   results,
		Abandoned: m.Abandoned,
		CreatedAt: m.CreatedAt,
	}
}

func fromDomainResponse(r *domain.UserResponse) *models.UserResponse {
	if r == nil {
		return nil
	}
	results := make(models.AnswerResults, 0, len(r.Results))
	for _, res := range r.Results {
		results = append(results, models.AnswerResult{
			QuestionID: res.QuestionID,
			Answer:     res.Answer,
			Correct:    res.Correct,
		})
	}
	return &models.UserResponse{
		ID:        r.ID,
		QuizID:    r.QuizID,
		Name:      r.Name,
		Email:     r.Email,
		Results:   results,
		Abandoned: r.Abandoned,
		CreatedAt: r.CreatedAt,
	}
}

// CreateResponse persists a scored submission. The partial unique index on (quiz_id, email)
// surfaces a concurrent or repeated submission as domain.ErrDuplicate.
func (r *sqlxResponseRepository) CreateResponse(ctx context.Context, response *domain.UserResponse) error {
	if response.ID == "" {
		response.ID = util.NewULID()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}

	query := `INSERT INTO user_responses (id, quiz_id, name, email, results, abandoned, created_at)
	          VALUES (:id, :quiz_id, :name, :email, :results, :abandoned, :created_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainResponse(response)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: response for quiz %s", domain.ErrDuplicate, response.QuizID)
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *sqlxResponseRepository) HasActiveResponse(ctx context.Context, quizID, email string) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM user_responses
	            WHERE quiz_id = $1 AND email = $2 AND abandoned = FALSE
	          )`

	var exists bool
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &exists, query, quizID, email); err != nil {
		return false, fmt.Errorf("failed to check existing response: %w", err)
	}
	return exists, nil
}

// GetResponse returns domain.ErrNotFound unless responseID belongs to quizID.
func (r *sqlxResponseRepository) GetResponse(ctx context.Context, quizID, responseID string) (*domain.UserResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM user_responses WHERE id = $1 AND quiz_id = $2`

	var m models.UserResponse
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, responseID, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get response %s: %w", responseID, err)
	}
	return toDomainResponse(&m), nil
}

func (r *sqlxResponseRepository) ListResponses(ctx context.Context, quizID string) ([]*domain.UserResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM user_responses
	          WHERE quiz_id = $1
	          ORDER BY created_at DESC`

	var rows []models.UserResponse
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list responses for quiz %s: %w", quizID, err)
	}

	responses := make([]*domain.UserResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, toDomainResponse(&rows[i]))
	}
	return responses, nil
}
