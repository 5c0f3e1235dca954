package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/just-java/internal/locale"
	"github.com/Lixing-Zhang/just-java/internal/metrics"
	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/quantity"
	"github.com/Lixing-Zhang/just-java/internal/repository"
)

// BoundError reports a counter move rejected at a quantity bound.
// Session holds the unchanged state and Warning the text to show the user.
type BoundError struct {
	Session *models.Session
	Warning string
	Err     error
}

func (e *BoundError) Error() string {
	return e.Err.Error()
}

func (e *BoundError) Unwrap() error {
	return e.Err
}

// SessionService handles the quantity controls of order form sessions
type SessionService struct {
	repo repository.SessionRepository
	loc  *locale.Localizer
	log  *slog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo repository.SessionRepository, loc *locale.Localizer, log *slog.Logger) *SessionService {
	return &SessionService{
		repo: repo,
		loc:  loc,
		log:  log,
	}
}

// CreateSession opens a new order form
func (s *SessionService) CreateSession(ctx context.Context) (*models.Session, error) {
	return s.repo.Create(ctx)
}

// GetSession returns a session by ID
func (s *SessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteSession discards a session
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Increment adds one cup, or returns a *BoundError at the maximum
func (s *SessionService) Increment(ctx context.Context, id string) (*models.Session, error) {
	return s.move(ctx, id, "increment", (*quantity.Counter).Increment)
}

// Decrement removes one cup, or returns a *BoundError at the minimum
func (s *SessionService) Decrement(ctx context.Context, id string) (*models.Session, error) {
	return s.move(ctx, id, "decrement", (*quantity.Counter).Decrement)
}

func (s *SessionService) move(ctx context.Context, id, direction string, step func(*quantity.Counter) error) (*models.Session, error) {
	session, err := s.repo.Update(ctx, id, step)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, quantity.ErrAboveMax) || errors.Is(err, quantity.ErrBelowMin) {
		metrics.ObserveQuantityRejection(direction)
		s.log.DebugContext(ctx, "quantity move rejected", "session_id", id, "direction", direction, "quantity", session.Quantity)
		return nil, &BoundError{
			Session: session,
			Warning: s.Warning(err),
			Err:     err,
		}
	}

	return nil, fmt.Errorf("%s session %s: %w", direction, id, err)
}

// Warning returns the user-facing text for a quantity bound error
func (s *SessionService) Warning(err error) string {
	switch {
	case errors.Is(err, quantity.ErrAboveMax):
		return s.loc.Text(locale.KeyTooManyCoffees, quantity.Max)
	case errors.Is(err, quantity.ErrBelowMin):
		return s.loc.Text(locale.KeyTooFewCoffees, quantity.Min)
	default:
		return ""
	}
}
