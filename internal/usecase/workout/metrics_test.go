package workout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

func fptr(f float64) *float64 { return &f }

func TestWeightInKg(t *testing.T) {
	assert.Equal(t, 70.0, WeightInKg(70, domain.UnitKg))
	assert.InDelta(t, 70.0*0.45359237, WeightInKg(70, domain.UnitLb), 1e-9)
}

func TestWeightUnitRoundTrip(t *testing.T) {
	// kg -> lb -> kg with the same constant must return the original value.
	for _, kg := range []float64{0, 1, 54.3, 70, 123.456} {
		lb := kg / 0.45359237
		assert.InDelta(t, kg, WeightInKg(lb, domain.UnitLb), 1e-9)
	}
}

func TestEstimateCaloriesPrefersEnergyPerMinute(t *testing.T) {
	ex := &domain.Exercise{
		Title:           "Cyclette",
		EnergyPerMinute: fptr(10),
		METValue:        fptr(4), // must be ignored
	}
	// 10 kcal/min for 6 minutes.
	assert.InDelta(t, 60.0, EstimateCalories(ex, 360, 70), 1e-9)
}

func TestEstimateCaloriesUsesMETValue(t *testing.T) {
	ex := &domain.Exercise{Title: "Vogatore", METValue: fptr(7)}
	want := 7 * 80.0 * 3.5 / 200 * 5 // 5 minutes at 80 kg
	assert.InDelta(t, want, EstimateCalories(ex, 300, 80), 1e-9)
}

func TestEstimateCaloriesPlankFallbackTable(t *testing.T) {
	// Plank, no energy data, 70 kg, 3 minutes: MET 3.0 gives
	// (3.0*70*3.5/200)*3 = 11.025 kcal.
	ex := &domain.Exercise{Title: "Plank"}
	assert.InDelta(t, 11.025, EstimateCalories(ex, 180, 70), 1e-9)
}

func TestEstimateCaloriesTitleMatchIsCaseInsensitive(t *testing.T) {
	want := EstimateCalories(&domain.Exercise{Title: "Plank"}, 180, 70)
	assert.InDelta(t, want, EstimateCalories(&domain.Exercise{Title: "PLANK laterale"}, 180, 70), 1e-9)
}

func TestEstimateCaloriesGenericFallback(t *testing.T) {
	ex := &domain.Exercise{Title: "Esercizio sconosciuto"}
	want := 6.0 * 70 * 3.5 / 200 * 2
	assert.InDelta(t, want, EstimateCalories(ex, 120, 70), 1e-9)
}

func TestEstimateCaloriesMonotonicity(t *testing.T) {
	mets := []float64{0, 1, 3, 6, 9.8}
	weights := []float64{0, 50, 70, 100}
	durations := []int{0, 60, 300, 3600}

	value := func(met, kg float64, sec int) float64 {
		return EstimateCalories(&domain.Exercise{Title: "x", METValue: fptr(met)}, sec, kg)
	}

	// Non-decreasing in each argument separately.
	for _, kg := range weights {
		for _, sec := range durations {
			for i := 1; i < len(mets); i++ {
				assert.GreaterOrEqual(t, value(mets[i], kg, sec), value(mets[i-1], kg, sec))
			}
		}
	}
	for _, met := range mets {
		for _, sec := range durations {
			for i := 1; i < len(weights); i++ {
				assert.GreaterOrEqual(t, value(met, weights[i], sec), value(met, weights[i-1], sec))
			}
		}
		for _, kg := range weights {
			for i := 1; i < len(durations); i++ {
				assert.GreaterOrEqual(t, value(met, kg, durations[i]), value(met, kg, durations[i-1]))
			}
		}
	}
}

func TestApportionMacrosConservesCalories(t *testing.T) {
	goals := [][3]float64{
		{100, 250, 70},
		{1, 1, 1},
		{200, 0, 0},
		{0, 0, 50},
	}
	for _, g := range goals {
		for _, burned := range []float64{0, 123.4, 500, 1759} {
			split := ApportionMacros(burned, g[0], g[1], g[2])
			total := split.ProteinG*4 + split.CarbsG*4 + split.FatsG*9
			assert.InDelta(t, burned, total, 1e-6, "goals=%v burned=%v", g, burned)
		}
	}
}

func TestApportionMacrosZeroGoalsFallbackSplit(t *testing.T) {
	split := ApportionMacros(1000, 0, 0, 0)
	// 20% protein / 50% carbs / 30% fat.
	assert.InDelta(t, 1000*0.2/4, split.ProteinG, 1e-9)
	assert.InDelta(t, 1000*0.5/4, split.CarbsG, 1e-9)
	assert.InDelta(t, 1000*0.3/9, split.FatsG, 1e-9)
}

func TestApportionMacrosWaterHeuristic(t *testing.T) {
	assert.Equal(t, 2.0, ApportionMacros(1000, 100, 250, 70).WaterLiters)
	// Rounded to 2 decimals: 333/500 = 0.666 -> 0.67.
	assert.Equal(t, 0.67, ApportionMacros(333, 100, 250, 70).WaterLiters)
}

func TestApportionMacrosProportionalToGoalShare(t *testing.T) {
	// Equal calorie goals per macro: protein 90g (360 kcal), carbs 90g
	// (360 kcal), fats 40g (360 kcal), so each macro gets a third of the burn.
	split := ApportionMacros(900, 90, 90, 40)
	assert.InDelta(t, 300.0/4, split.ProteinG, 1e-9)
	assert.InDelta(t, 300.0/4, split.CarbsG, 1e-9)
	assert.InDelta(t, 300.0/9, split.FatsG, 1e-9)
}

func TestBuildProgressAggregates(t *testing.T) {
	p := &domain.Profile{
		ProteinGoal: 100, CarbsGoal: 250, FatsGoal: 70, WaterGoal: 2,
	}
	workouts := []domain.Workout{
		{Duration: 600, Calories: fptr(120)},
		{Duration: 300, Calories: fptr(80)},
		{Duration: 60, Calories: nil}, // degraded row, no calories column
	}

	progress := BuildProgress(30, workouts, p)

	assert.Equal(t, 3, progress.Sessions)
	assert.Equal(t, 16, progress.TotalMinutes)
	assert.Equal(t, 200, progress.TotalCalories)
	assert.Equal(t, int(math.Round(200.0/3)), progress.AvgCalories)
	assert.Equal(t, 2.0, progress.Goals.WaterLiters)
}

func TestBuildProgressEmptyRange(t *testing.T) {
	p := &domain.Profile{ProteinGoal: 100, CarbsGoal: 250, FatsGoal: 70, WaterGoal: 2}
	progress := BuildProgress(7, nil, p)

	assert.Zero(t, progress.Sessions)
	assert.Zero(t, progress.AvgCalories)
	assert.Zero(t, progress.Burned.ProteinG)
}
