package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/repository"
)

type exerciseStore struct {
	db *sqlx.DB
}

func NewExerciseStore(db *sqlx.DB) repository.ExerciseStore {
	return &exerciseStore{db: db}
}

func (s *exerciseStore) ListByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	query := `
		SELECT id, level, category, title, description, default_duration,
		       default_sets, default_reps, image_url, energy_per_minute,
		       met_value, created_at
		FROM exercises
		WHERE level = $1
		ORDER BY created_at ASC
	`
	err := s.db.SelectContext(ctx, &exercises, query, string(level))
	return exercises, err
}
