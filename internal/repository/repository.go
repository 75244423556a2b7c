package repository

import (
	"context"
	"time"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// ProfileStore is the narrow contract over the hosted profiles table. Rows are
// keyed by the externally-assigned identity id; a missing row is a valid state
// (defaults apply), reported as domain.ErrProfileNotFound.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*domain.ProfileRecord, error)
	// Upsert writes the given columns for the row, creating it when absent.
	// Concurrent upserts of different columns are last-writer-wins per column.
	Upsert(ctx context.Context, id string, columns map[string]interface{}) error
}

// WorkoutStore appends and reads the user's workout records.
type WorkoutStore interface {
	Insert(ctx context.Context, w *domain.Workout) error
	// InsertMinimal writes only the required columns (exercise, duration,
	// reps, timestamp, user id). Fallback path for remote schemas lacking the
	// calorie/weight columns.
	InsertMinimal(ctx context.Context, w *domain.Workout) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Workout, error)
}

// ExerciseStore reads the exercise catalog. Read-only: catalog rows are owned
// by the admin upload surface.
type ExerciseStore interface {
	ListByLevel(ctx context.Context, level domain.Level) ([]domain.Exercise, error)
}

// MessageStore reads and appends community messages.
type MessageStore interface {
	List(ctx context.Context, limit int) ([]domain.Message, error)
	Insert(ctx context.Context, m *domain.Message) error
}
