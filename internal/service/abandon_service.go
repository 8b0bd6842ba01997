package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"quizlink/internal/config"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultAbandonQueueSize    = 256
	defaultAbandonWriteTimeout = 3 * time.Second
)

// AbandonService records and reports quizzes left without submitting.
type AbandonService interface {
	// RecordAbandon increments the (quiz, email) counter. It never returns an error:
	// failures are logged and reported as false.
	RecordAbandon(ctx context.Context, quizID, email, userID string) bool
	GetAbandonInfo(ctx context.Context, quizID, ownerID string) (*dto.AbandonInfoResponse, error)
}

type abandonService struct {
	quizRepo    domain.QuizRepository
	abandonRepo domain.AbandonRepository
}

// NewAbandonService creates a new instance of abandonService
func NewAbandonService(quizRepo domain.QuizRepository, abandonRepo domain.AbandonRepository) AbandonService {
	return &abandonService{quizRepo: quizRepo, abandonRepo: abandonRepo}
}

func (s *abandonService) RecordAbandon(ctx context.Context, quizID, email, userID string) bool {
	appLogger := logger.Get()
	quizID = strings.TrimSpace(quizID)
	email = domain.NormalizeEmail(email)
	if quizID == "" || email == "" {
		appLogger.Debug("Ignoring abandon event without quiz or email", zap.String("quizID", quizID))
		return false
	}

	event, err := s.abandonRepo.IncrementAbandon(ctx, &domain.AbandonEvent{
		QuizID: quizID,
		Email:  email,
		UserID: strings.TrimSpace(userID),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			appLogger.Debug("Abandon event for unknown quiz", zap.String("quizID", quizID))
		} else {
			appLogger.Warn("Failed to record abandon event", zap.Error(err), zap.String("quizID", quizID))
		}
		return false
	}

	appLogger.Debug("Abandon event recorded", zap.String("quizID", quizID), zap.Int("count", event.Count))
	return true
}

func (s *abandonService) GetAbandonInfo(ctx context.Context, quizID, ownerID string) (*dto.AbandonInfoResponse, error) {
	if _, err := s.quizRepo.GetQuizForOwner(ctx, quizID, ownerID); err != nil {
		return nil, quizLookupError(err, quizID)
	}

	events, err := s.abandonRepo.ListAbandonEvents(ctx, quizID)
	if err != nil {
		return nil, domain.NewStoreError("Failed to list abandon events", err)
	}

	resp := &dto.AbandonInfoResponse{
		QuizID: quizID,
		Events: make([]dto.AbandonEventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.TotalAbandons += e.Count
		resp.Events = append(resp.Events, dto.AbandonEventResponse{
			ID:        e.ID,
			QuizID:    e.QuizID,
			Email:     e.Email,
			UserID:    e.UserID,
			Count:     e.Count,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return resp, nil
}

// AbandonRecorder is the part of AbandonService the tracker depends on.
type AbandonRecorder interface {
	RecordAbandon(ctx context.Context, quizID, email, userID string) bool
}

type abandonEvent struct {
	quizID string
	email  string
	userID string
}

// AbandonTracker hands abandon events to a single background worker so respondents
// never wait on the write. Delivery is at most once.
type AbandonTracker struct {
	recorder     AbandonRecorder
	writeTimeout time.Duration

	mu      sync.RWMutex
	queue   chan abandonEvent
	closed  bool
	started bool
	done    chan struct{}
}

// NewAbandonTracker creates a tracker. Call Start before serving and Stop on shutdown.
func NewAbandonTracker(recorder AbandonRecorder, cfg config.AbandonConfig) *AbandonTracker {
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultAbandonQueueSize
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultAbandonWriteTimeout
	}
	return &AbandonTracker{
		recorder:     recorder,
		writeTimeout: timeout,
		queue:        make(chan abandonEvent, size),
		done:         make(chan struct{}),
	}
}

// Start launches the worker goroutine. Calling it more than once has no effect.
func (t *AbandonTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.closed {
		return
	}
	t.started = true
	go t.run()
}

func (t *AbandonTracker) run() {
	defer close(t.done)
	for ev := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), t.writeTimeout)
		t.recorder.RecordAbandon(ctx, ev.quizID, ev.email, ev.userID)
		cancel()
	}
}

// Enqueue never blocks. It returns false when the event was dropped because the
// queue is full or the tracker is stopped.
func (t *AbandonTracker) Enqueue(quizID, email, userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return false
	}
	select {
	case t.queue <- abandonEvent{quizID: quizID, email: email, userID: userID}:
		return true
	default:
		logger.Get().Warn("Abandon queue full, dropping event", zap.String("quizID", quizID))
		return false
	}
}

// Stop stops accepting events and waits until queued ones are written or ctx expires.
func (t *AbandonTracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.queue)
	started := t.started
	t.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
