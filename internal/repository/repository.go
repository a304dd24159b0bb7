package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// ErrNotFound is returned when no evaluation has the requested id
var ErrNotFound = errors.New("evaluation not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateEvaluation stores an evaluation and fills its creation time
func (r *Repository) CreateEvaluation(ctx context.Context, e *models.Evaluation) error {
	application, err := json.Marshal(e.Application)
	if err != nil {
		return fmt.Errorf("failed to encode application: %w", err)
	}
	result, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
		INSERT INTO mortgage.evaluations (id, country, score, approved, application, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query, e.ID, string(e.Country), e.Result.Score, e.Result.Approved, application, result).
		Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

// FindEvaluationByID retrieves an evaluation by id
func (r *Repository) FindEvaluationByID(ctx context.Context, id string) (*models.Evaluation, error) {
	var (
		e           models.Evaluation
		country     string
		application []byte
		result      []byte
	)
	query := `
		SELECT id, country, application, result, created_at
		FROM mortgage.evaluations
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &country, &application, &result, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}

	e.Country = models.CountryCode(country)
	if err := json.Unmarshal(application, &e.Application); err != nil {
		return nil, fmt.Errorf("failed to decode application: %w", err)
	}
	if err := json.Unmarshal(result, &e.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &e, nil
}
