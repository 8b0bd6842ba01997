package repository

import (
	"context"
	"fmt"
	"time"

	"quizlink/internal/domain"
	"quizlink/internal/repository/models"
	"quizlink/internal/util"

	"github.com/jmoiron/sqlx"
)

const abandonColumns = `id, quiz_id, email, user_id, count, created_at, updated_at`

// sqlxAbandonRepository implements domain.AbandonRepository using sqlx.
type sqlxAbandonRepository struct {
	db *sqlx.DB
}

// NewSQLXAbandonRepository creates a new instance of sqlxAbandonRepository.
func NewSQLXAbandonRepository(db *sqlx.DB) domain.AbandonRepository {
	return &sqlxAbandonRepository{db: db}
}

func toDomainAbandonEvent(m *models.AbandonEvent) *domain.AbandonEvent {
	if m == nil {
		return nil
	}
	return &domain.AbandonEvent{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Email:     m.Email,
		UserID:    m.UserID.String,
		Count:     m.Count,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// IncrementAbandon upserts the (quiz, email) counter in a single statement, so concurrent
// increments never lose updates.
func (r *sqlxAbandonRepository) IncrementAbandon(ctx context.Context, event *domain.AbandonEvent) (*domain.AbandonEvent, error) {
	query := `INSERT INTO abandon_events (id, quiz_id, email, user_id, count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, 1, $5, $5)
	          ON CONFLICT (quiz_id, email) DO UPDATE SET
	            count = abandon_events.count + 1,
	            user_id = COALESCE(EXCLUDED.user_id, abandon_events.user_id),
	            updated_at = EXCLUDED.updated_at
	          RETURNING ` + abandonColumns

	var m models.AbandonEvent
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		util.NewULID(), event.QuizID, event.Email, util.StringToNullString(event.UserID), time.Now())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to record abandon event: %w", err)
	}
	return toDomainAbandonEvent(&m), nil
}

func (r *sqlxAbandonRepository) ListAbandonEvents(ctx context.Context, quizID string) ([]*domain.AbandonEvent, error) {
	query := `SELECT ` + abandonColumns + ` FROM abandon_events
	          WHERE quiz_id = $1
	          ORDER BY updated_at DESC`

	var rows []models.AbandonEvent
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list abandon events for quiz %s: %w", quizID, err)
	}

	events := make([]*domain.AbandonEvent, 0, len(rows))
	for i := range rows {
		events = append(events, toDomainAbandonEvent(&rows[i]))
	}
	return events, nil
}
