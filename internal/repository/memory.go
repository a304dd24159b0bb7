package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// MemoryRepository keeps evaluations in process memory. It is used when no
// database is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]models.Evaluation
	now  func() time.Time
}

// NewMemoryRepository initializes a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]models.Evaluation),
		now:  time.Now,
	}
}

// CreateEvaluation stores an evaluation and fills its creation time
func (r *MemoryRepository) CreateEvaluation(_ context.Context, e *models.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.CreatedAt = r.now().UTC()
	r.data[e.ID] = *e
	return nil
}

// FindEvaluationByID retrieves an evaluation by id
func (r *MemoryRepository) FindEvaluationByID(_ context.Context, id string) (*models.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}
