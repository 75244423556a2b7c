package domain

import "time"

// FallbackCategory groups exercises whose catalog row has no category set.
const FallbackCategory = "Generale"

// Exercise is a catalog entry. The catalog is read-only here; rows are managed
// by the admin upload surface.
type Exercise struct {
	ID              string    `json:"id" db:"id"`
	Level           string    `json:"level" db:"level"`
	Category        *string   `json:"category" db:"category"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	DefaultDuration *float64  `json:"default_duration" db:"default_duration"` // minutes
	DefaultSets     *int      `json:"default_sets" db:"default_sets"`
	DefaultReps     *int      `json:"default_reps" db:"default_reps"`
	ImageURL        *string   `json:"image_url" db:"image_url"`
	EnergyPerMinute *float64  `json:"energy_per_minute" db:"energy_per_minute"` // kcal/min, overrides MET
	METValue        *float64  `json:"met_value" db:"met_value"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// CategoryOrFallback returns the grouping label for the exercise.
func (e *Exercise) CategoryOrFallback() string {
	if e.Category == nil || *e.Category == "" {
		return FallbackCategory
	}
	return *e.Category
}

// DurationMinutesOr returns the exercise's default duration, or the given
// fallback when the catalog row has none.
func (e *Exercise) DurationMinutesOr(fallback float64) float64 {
	if e.DefaultDuration != nil {
		return *e.DefaultDuration
	}
	return fallback
}
