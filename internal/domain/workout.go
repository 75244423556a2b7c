package domain

import "time"

// Workout is one persisted training record. The set is the atomic unit: a
// multi-set exercise produces one row per completed set, tagged with
// SetNumber/SetsTotal; single-shot exercises leave both nil. Rows are
// immutable once written and owned by the user who created them.
type Workout struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Exercise    string    `json:"exercise" db:"exercise"`
	Duration    int       `json:"duration" db:"duration"` // seconds
	Reps        int       `json:"reps" db:"reps"`
	PerformedAt time.Time `json:"performed_at" db:"performed_at"`
	Calories    *float64  `json:"calories" db:"calories"`
	WeightUsed  *float64  `json:"weight_used" db:"weight_used"`
	SetNumber   *int      `json:"set_number" db:"set_number"`
	SetsTotal   *int      `json:"sets_total" db:"sets_total"`
}

// Identity is the externally-assigned account record, derived from the hosted
// auth provider's access token. It is never created or mutated here.
type Identity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
