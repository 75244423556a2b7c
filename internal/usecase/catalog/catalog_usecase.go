// Package catalog turns the level-filtered exercise list into the category
// view the client browses: grouped by category, filtered against the user's
// preferred time budget, with the preferred category pre-selected.
package catalog

import (
	"context"
	"fmt"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/prefs"
	"github.com/wellgym/wellgym-backend/internal/repository"
	"github.com/wellgym/wellgym-backend/internal/usecase/profile"
)

type UseCase struct {
	profiles  *profile.UseCase
	exercises repository.ExerciseStore
}

func NewUseCase(profiles *profile.UseCase, exercises repository.ExerciseStore) *UseCase {
	return &UseCase{profiles: profiles, exercises: exercises}
}

// Groups is an ordered grouping of exercises by category. Order is
// first-appearance order of the stored rows, which the catalog returns by
// creation time.
type Groups struct {
	Categories []string
	ByCategory map[string][]domain.Exercise
}

// GroupByCategory buckets exercises by category, using the fallback label for
// rows with none set.
func GroupByCategory(exercises []domain.Exercise) Groups {
	g := Groups{ByCategory: make(map[string][]domain.Exercise)}
	for _, ex := range exercises {
		cat := ex.CategoryOrFallback()
		if _, seen := g.ByCategory[cat]; !seen {
			g.Categories = append(g.Categories, cat)
		}
		g.ByCategory[cat] = append(g.ByCategory[cat], ex)
	}
	return g
}

// CategoryMinutes sums the category's exercise durations, substituting the
// fallback for exercises without a default duration.
func CategoryMinutes(exercises []domain.Exercise, fallbackMinutes float64) float64 {
	var total float64
	for _, ex := range exercises {
		total += ex.DurationMinutesOr(fallbackMinutes)
	}
	return total
}

// SelectDisplayCategories filters to categories whose total duration meets the
// budget. When nothing qualifies the full list comes back with anyMatched
// false, and the caller shows a disclaimer instead of an empty screen.
func SelectDisplayCategories(all []string, durations map[string]float64, budgetMinutes float64) (selected []string, anyMatched bool) {
	for _, cat := range all {
		if durations[cat] >= budgetMinutes {
			selected = append(selected, cat)
		}
	}
	if len(selected) > 0 {
		return selected, true
	}
	return all, false
}

// AutoSelectFirstMatch walks the user's resolved preference list in order and
// returns the first category present and non-empty in the grouping, with its
// first exercise. Preference order wins over the duration filter: this is the
// "land returning users in their usual workout" shortcut.
func AutoSelectFirstMatch(preferred []string, groups Groups) (category string, first *domain.Exercise, ok bool) {
	for _, cat := range preferred {
		exs := groups.ByCategory[cat]
		if len(exs) > 0 {
			return cat, &exs[0], true
		}
	}
	return "", nil, false
}

// CategoryView is one browsable category.
type CategoryView struct {
	Name         string            `json:"name"`
	Exercises    []domain.Exercise `json:"exercises"`
	TotalMinutes float64           `json:"total_minutes"`
}

// BrowseResult is the full category screen state.
type BrowseResult struct {
	Level      domain.Level   `json:"level"`
	Categories []CategoryView `json:"categories"`
	// AnyMatched is false when no category reached the preferred duration and
	// the unfiltered set is being shown.
	AnyMatched       bool             `json:"any_matched"`
	AutoCategory     string           `json:"auto_category,omitempty"`
	AutoExercise     *domain.Exercise `json:"auto_exercise,omitempty"`
	PreferredMinutes float64          `json:"preferred_minutes"`
}

// Browse resolves the profile, loads the level's catalog and applies the
// preference and duration pipeline.
func (uc *UseCase) Browse(ctx context.Context) (*BrowseResult, error) {
	p, err := uc.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	exercises, err := uc.exercises.ListByLevel(ctx, p.Level)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	groups := GroupByCategory(exercises)
	budget := float64(p.PreferredDuration)

	durations := make(map[string]float64, len(groups.Categories))
	for _, cat := range groups.Categories {
		durations[cat] = CategoryMinutes(groups.ByCategory[cat], budget)
	}

	display, anyMatched := SelectDisplayCategories(groups.Categories, durations, budget)

	result := &BrowseResult{
		Level:            p.Level,
		AnyMatched:       anyMatched,
		PreferredMinutes: budget,
	}
	for _, cat := range display {
		result.Categories = append(result.Categories, CategoryView{
			Name:         cat,
			Exercises:    groups.ByCategory[cat],
			TotalMinutes: durations[cat],
		})
	}

	preferred := prefs.Parse(p.PreferredCategories).CategoriesFor(string(p.Level))
	if cat, first, ok := AutoSelectFirstMatch(preferred, groups); ok {
		result.AutoCategory = cat
		result.AutoExercise = first
	}

	return result, nil
}
