// Package workout persists completed training sets and derives the
// calorie/macro projections shown on the progress screen. One persisted row is
// one completed set; whole-exercise and range aggregates are computed on read.
package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/repository"
	"github.com/wellgym/wellgym-backend/internal/usecase/auth"
	"github.com/wellgym/wellgym-backend/internal/usecase/profile"
)

type UseCase struct {
	identity auth.IdentityProvider
	profiles *profile.UseCase
	store    repository.WorkoutStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewUseCase(
	identity auth.IdentityProvider,
	profiles *profile.UseCase,
	store repository.WorkoutStore,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		identity: identity,
		profiles: profiles,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// SaveSetRequest is one completed set (or a single-shot exercise when the set
// counters are nil).
type SaveSetRequest struct {
	Exercise        *domain.Exercise `json:"exercise" binding:"required"`
	DurationSeconds int              `json:"duration_seconds" binding:"min=0"`
	Reps            int              `json:"reps" binding:"min=0"`
	WeightUsed      *float64         `json:"weight_used"`
	SetNumber       *int             `json:"set_number" binding:"omitempty,min=1"`
	SetsTotal       *int             `json:"sets_total" binding:"omitempty,min=1"`
}

// SaveSet estimates the calorie burn from the user's body weight and the
// exercise's energy data, then appends the record. When the full insert is
// rejected (typically a remote schema without the calorie/weight columns) it
// retries with the required columns only and reports a degraded success
// rather than failing the whole save.
func (uc *UseCase) SaveSet(ctx context.Context, req *SaveSetRequest) (*domain.Workout, domain.SaveStatus, error) {
	p, err := uc.profiles.Load(ctx)
	if err != nil {
		return nil, "", err
	}

	weightKg := WeightInKg(p.Weight, p.WeightUnits)
	kcal := math.Round(EstimateCalories(req.Exercise, req.DurationSeconds, weightKg))

	w := &domain.Workout{
		ID:          uuid.NewString(),
		UserID:      p.ID,
		Exercise:    req.Exercise.Title,
		Duration:    req.DurationSeconds,
		Reps:        req.Reps,
		PerformedAt: uc.now().UTC(),
		Calories:    &kcal,
		WeightUsed:  req.WeightUsed,
		SetNumber:   req.SetNumber,
		SetsTotal:   req.SetsTotal,
	}

	if err := uc.store.Insert(ctx, w); err != nil {
		uc.logger.Warn("full workout insert rejected, retrying without optional columns",
			zap.String("exercise", w.Exercise), zap.Error(err))

		minimal := *w
		minimal.Calories = nil
		minimal.WeightUsed = nil
		minimal.SetNumber = nil
		minimal.SetsTotal = nil
		if err := uc.store.InsertMinimal(ctx, &minimal); err != nil {
			return nil, "", fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
		}
		return &minimal, domain.StatusDegraded, nil
	}

	return w, domain.StatusSaved, nil
}

// History returns the user's records over the last rangeDays days, newest
// first.
func (uc *UseCase) History(ctx context.Context, rangeDays int) ([]domain.Workout, error) {
	identity, err := uc.identity.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	since := uc.now().UTC().AddDate(0, 0, -rangeDays)
	workouts, err := uc.store.ListSince(ctx, identity.ID, since)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// Progress is the progress-screen aggregate: session totals plus the burned
// calories apportioned against the user's macro and hydration goals.
type Progress struct {
	RangeDays     int              `json:"range_days"`
	Sessions      int              `json:"sessions"`
	TotalMinutes  int              `json:"total_minutes"`
	TotalCalories int              `json:"total_calories"`
	AvgCalories   int              `json:"avg_calories"`
	Burned        MacroSplit       `json:"burned"`
	Goals         ProgressGoals    `json:"goals"`
	Completion    ProgressPercents `json:"completion"`
	Workouts      []domain.Workout `json:"workouts"`
}

type ProgressGoals struct {
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatsG       float64 `json:"fats_g"`
	WaterLiters float64 `json:"water_liters"`
}

type ProgressPercents struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
	Water   int `json:"water"`
}

// BuildProgress computes the aggregate over the given records and goals.
// Exposed separately from the fetch so it stays purely computational.
func BuildProgress(rangeDays int, workouts []domain.Workout, p *domain.Profile) *Progress {
	var totalSeconds int
	var totalCalories float64
	for _, w := range workouts {
		totalSeconds += w.Duration
		if w.Calories != nil {
			totalCalories += *w.Calories
		}
	}

	sessions := len(workouts)
	avg := 0
	if sessions > 0 {
		avg = int(math.Round(totalCalories / float64(sessions)))
	}

	split := ApportionMacros(totalCalories, p.ProteinGoal, p.CarbsGoal, p.FatsGoal)
	// Grams round at display time, here.
	split.ProteinG = math.Round(split.ProteinG)
	split.CarbsG = math.Round(split.CarbsG)
	split.FatsG = math.Round(split.FatsG)

	return &Progress{
		RangeDays:     rangeDays,
		Sessions:      sessions,
		TotalMinutes:  int(math.Round(float64(totalSeconds) / 60)),
		TotalCalories: int(math.Round(totalCalories)),
		AvgCalories:   avg,
		Burned:        split,
		Goals: ProgressGoals{
			ProteinG:    p.ProteinGoal,
			CarbsG:      p.CarbsGoal,
			FatsG:       p.FatsGoal,
			WaterLiters: p.WaterGoal,
		},
		Completion: ProgressPercents{
			Protein: pctDone(split.ProteinG, p.ProteinGoal),
			Carbs:   pctDone(split.CarbsG, p.CarbsGoal),
			Fats:    pctDone(split.FatsG, p.FatsGoal),
			Water:   pctDone(split.WaterLiters, p.WaterGoal),
		},
		Workouts: workouts,
	}
}

// GetProgress loads the profile and history and builds the aggregate.
func (uc *UseCase) GetProgress(ctx context.Context, rangeDays int) (*Progress, error) {
	p, err := uc.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	since := uc.now().UTC().AddDate(0, 0, -rangeDays)
	workouts, err := uc.store.ListSince(ctx, p.ID, since)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	return BuildProgress(rangeDays, workouts, p), nil
}

func pctDone(done, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(done / goal * 100))
}
