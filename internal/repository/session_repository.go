package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/just-java/internal/models"
	"github.com/Lixing-Zhang/just-java/internal/quantity"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository defines the interface for order form session state
type SessionRepository interface {
	Create(ctx context.Context) (*models.Session, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// Update runs fn against the session's counter under the repository lock.
	// The returned session reflects the counter after fn, even when fn fails.
	Update(ctx context.Context, id string, fn func(c *quantity.Counter) error) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionEntry struct {
	counter   *quantity.Counter
	createdAt time.Time
	updatedAt time.Time
}

// InMemorySessionRepository keeps sessions in process memory and forgets
// them after ttl without activity
type InMemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	nowFunc  func() time.Time
}

// NewInMemorySessionRepository creates an empty session repository
func NewInMemorySessionRepository(ttl time.Duration) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// Create opens a session with the counter at its default
func (r *InMemorySessionRepository) Create(ctx context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	r.evictExpired(now)

	id := uuid.New().String()
	entry := &sessionEntry{
		counter:   quantity.NewCounter(),
		createdAt: now,
		updatedAt: now,
	}
	r.sessions[id] = entry

	return entry.snapshot(id), nil
}

// GetByID returns a session by its ID
func (r *InMemorySessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return entry.snapshot(id), nil
}

// Update applies fn to the session counter
func (r *InMemorySessionRepository) Update(ctx context.Context, id string, fn func(c *quantity.Counter) error) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	fnErr := fn(entry.counter)
	entry.updatedAt = r.nowFunc()

	return entry.snapshot(id), fnErr
}

// Delete removes a session
func (r *InMemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(id); err != nil {
		return err
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (r *InMemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// lookup must be called with r.mu held
func (r *InMemorySessionRepository) lookup(id string) (*sessionEntry, error) {
	entry, exists := r.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if r.nowFunc().Sub(entry.updatedAt) > r.ttl {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// evictExpired must be called with r.mu held
func (r *InMemorySessionRepository) evictExpired(now time.Time) {
	for id, entry := range r.sessions {
		if now.Sub(entry.updatedAt) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

func (e *sessionEntry) snapshot(id string) *models.Session {
	return &models.Session{
		ID:        id,
		Quantity:  e.counter.Value(),
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
}
