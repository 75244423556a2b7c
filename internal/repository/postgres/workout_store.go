package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/repository"
)

type workoutStore struct {
	db *sqlx.DB
}

func NewWorkoutStore(db *sqlx.DB) repository.WorkoutStore {
	return &workoutStore{db: db}
}

func (s *workoutStore) Insert(ctx context.Context, w *domain.Workout) error {
	query := `
		INSERT INTO workouts (id, user_id, exercise, duration, reps, performed_at,
		                      calories, weight_used, set_number, sets_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.UserID, w.Exercise, w.Duration, w.Reps, w.PerformedAt,
		w.Calories, w.WeightUsed, w.SetNumber, w.SetsTotal,
	)
	return err
}

func (s *workoutStore) InsertMinimal(ctx context.Context, w *domain.Workout) error {
	query := `
		INSERT INTO workouts (id, user_id, exercise, duration, reps, performed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.UserID, w.Exercise, w.Duration, w.Reps, w.PerformedAt,
	)
	return err
}

func (s *workoutStore) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Workout, error) {
	var workouts []domain.Workout
	query := `
		SELECT id, user_id, exercise, duration, reps, performed_at,
		       calories, weight_used, set_number, sets_total
		FROM workouts
		WHERE user_id = $1 AND performed_at >= $2
		ORDER BY performed_at DESC
	`
	err := s.db.SelectContext(ctx, &workouts, query, userID, since)
	return workouts, err
}
