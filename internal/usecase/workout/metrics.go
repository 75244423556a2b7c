package workout

import (
	"math"
	"strings"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

const lbToKg = 0.45359237

// WeightInKg normalizes a body weight to kilograms.
func WeightInKg(weight float64, units domain.WeightUnit) float64 {
	if units == domain.UnitLb {
		return weight * lbToKg
	}
	return weight
}

// Estimator is one calorie-estimation strategy. Estimate reports ok=false when
// the strategy does not apply to the exercise, letting the ladder fall
// through to the next one.
type Estimator interface {
	Estimate(ex *domain.Exercise, durationMinutes, weightKg float64) (kcal float64, ok bool)
}

// metFormula is the standard MET energy expenditure:
// kcal/min = MET * weightKg * 3.5 / 200.
func metFormula(met, weightKg, durationMinutes float64) float64 {
	return met * weightKg * 3.5 / 200 * durationMinutes
}

type energyPerMinuteEstimator struct{}

func (energyPerMinuteEstimator) Estimate(ex *domain.Exercise, durationMinutes, _ float64) (float64, bool) {
	if ex.EnergyPerMinute == nil {
		return 0, false
	}
	return *ex.EnergyPerMinute * durationMinutes, true
}

type metValueEstimator struct{}

func (metValueEstimator) Estimate(ex *domain.Exercise, durationMinutes, weightKg float64) (float64, bool) {
	if ex.METValue == nil {
		return 0, false
	}
	return metFormula(*ex.METValue, weightKg, durationMinutes), true
}

// titleMETs covers common exercises whose catalog rows carry no energy data.
var titleMETs = map[string]float64{
	"plank":        3.0,
	"stretching":   3.0,
	"squat":        5.0,
	"affondi":      4.0,
	"push up":      8.0,
	"jumping jack": 8.0,
	"burpee":       9.8,
}

type titleTableEstimator struct{}

func (titleTableEstimator) Estimate(ex *domain.Exercise, durationMinutes, weightKg float64) (float64, bool) {
	title := strings.ToLower(strings.ReplaceAll(ex.Title, "-", " "))
	for name, met := range titleMETs {
		if strings.Contains(title, name) {
			return metFormula(met, weightKg, durationMinutes), true
		}
	}
	return 0, false
}

// genericEstimator is the terminal rung: moderate effort, MET 6.0.
type genericEstimator struct{}

func (genericEstimator) Estimate(_ *domain.Exercise, durationMinutes, weightKg float64) (float64, bool) {
	return metFormula(6.0, weightKg, durationMinutes), true
}

// estimationLadder is ordered by specificity; the first applicable strategy
// wins. New strategies slot in without touching call sites.
var estimationLadder = []Estimator{
	energyPerMinuteEstimator{},
	metValueEstimator{},
	titleTableEstimator{},
	genericEstimator{},
}

// EstimateCalories runs the strategy ladder. The result is unrounded;
// rounding happens only at persistence and display time.
func EstimateCalories(ex *domain.Exercise, durationSeconds int, weightKg float64) float64 {
	durationMinutes := float64(durationSeconds) / 60
	for _, e := range estimationLadder {
		if kcal, ok := e.Estimate(ex, durationMinutes, weightKg); ok {
			return kcal
		}
	}
	return 0 // unreachable: the generic rung always applies
}

// MacroSplit is burned calories apportioned back into macro grams plus the
// hydration heuristic.
type MacroSplit struct {
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatsG       float64 `json:"fats_g"`
	WaterLiters float64 `json:"water_liters"`
}

// Fallback split when the goal triple sums to zero calories.
const (
	fallbackProteinPct = 0.2
	fallbackCarbsPct   = 0.5
	fallbackFatsPct    = 0.3
)

// ApportionMacros splits burned calories across the macro goals in proportion
// to each macro's calorie share of the total goal (protein/carbs 4 kcal/g,
// fats 9 kcal/g), then converts back to grams. Grams stay unrounded; display
// code rounds. Water is a fixed 1 L per 500 kcal, rounded to 2 decimals.
func ApportionMacros(burnedCalories, proteinGoalG, carbsGoalG, fatsGoalG float64) MacroSplit {
	kcalProtein := proteinGoalG * 4
	kcalCarbs := carbsGoalG * 4
	kcalFats := fatsGoalG * 9
	totalGoal := kcalProtein + kcalCarbs + kcalFats

	pctP, pctC, pctF := fallbackProteinPct, fallbackCarbsPct, fallbackFatsPct
	if totalGoal > 0 {
		pctP = kcalProtein / totalGoal
		pctC = kcalCarbs / totalGoal
		pctF = kcalFats / totalGoal
	}

	return MacroSplit{
		ProteinG:    burnedCalories * pctP / 4,
		CarbsG:      burnedCalories * pctC / 4,
		FatsG:       burnedCalories * pctF / 9,
		WaterLiters: math.Round(burnedCalories/500*100) / 100,
	}
}
