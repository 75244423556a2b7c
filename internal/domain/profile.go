package domain

import (
	"fmt"
	"time"
)

// Level is the user's fitness level. The catalog, preference resolution and
// calorie estimation all key off it.
type Level string

const (
	LevelNeofita    Level = "Neofita"
	LevelIntermedio Level = "Intermedio"
	LevelAvanzato   Level = "Avanzato"
)

func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelNeofita, LevelIntermedio, LevelAvanzato:
		return Level(s), nil
	}
	return "", fmt.Errorf("%w: unknown level %q", ErrInvalidField, s)
}

// WeightUnit is the unit the user entered their body weight in.
type WeightUnit string

const (
	UnitKg WeightUnit = "kg"
	UnitLb WeightUnit = "lb"
)

func ParseWeightUnit(s string) (WeightUnit, error) {
	switch WeightUnit(s) {
	case UnitKg, UnitLb:
		return WeightUnit(s), nil
	}
	return "", fmt.Errorf("%w: unknown weight unit %q", ErrInvalidField, s)
}

// Profile defaults, applied when neither the remote row nor the session cache
// carries a value for a field.
const (
	DefaultLevel             = LevelNeofita
	DefaultGoal              = "30 min/die"
	DefaultPreferredDuration = 30
	DefaultWeightKg          = 70.0
	DefaultProteinGoalG      = 100.0
	DefaultCarbsGoalG        = 250.0
	DefaultFatsGoalG         = 70.0
	DefaultWaterGoalL        = 2.0
)

// Profile is the merged, fully-resolved snapshot: every field holds a concrete
// value (remote, cached or default). This is what handlers serve and what the
// session cache stores.
type Profile struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	AvatarURL           *string    `json:"avatar_url"`
	Level               Level      `json:"level"`
	Goal                string     `json:"goal"`
	Notifications       bool       `json:"notifications"`
	Bio                 string     `json:"bio"`
	PreferredDuration   int        `json:"preferred_duration"`
	PreferredCategories string     `json:"preferred_categories"`
	IsPublic            bool       `json:"is_public"`
	Weight              float64    `json:"weight"`
	WeightUnits         WeightUnit `json:"weight_units"`
	ProteinGoal         float64    `json:"protein_goal"`
	CarbsGoal           float64    `json:"carbs_goal"`
	FatsGoal            float64    `json:"fats_goal"`
	WaterGoal           float64    `json:"water_goal"`
	JoinedAt            time.Time  `json:"joined"`
}

// ProfileRecord is the raw remote row. Every attribute is nullable: the hosted
// store may hold a partial row, or none at all, and merge precedence depends on
// distinguishing "absent" from a concrete value.
type ProfileRecord struct {
	ID                  string   `db:"id"`
	FullName            *string  `db:"full_name"`
	AvatarURL           *string  `db:"avatar_url"`
	Level               *string  `db:"level"`
	Goal                *string  `db:"goal"`
	Notifications       *bool    `db:"notifications"`
	Bio                 *string  `db:"bio"`
	PreferredDuration   *int     `db:"preferred_duration"`
	PreferredCategories *string  `db:"preferred_categories"`
	IsPublic            *bool    `db:"is_public"`
	Weight              *float64 `db:"weight"`
	WeightUnits         *string  `db:"weight_units"`
	ProteinGoal         *float64 `db:"protein_goal"`
	CarbsGoal           *float64 `db:"carbs_goal"`
	FatsGoal            *float64 `db:"fats_goal"`
	WaterGoal           *float64 `db:"water_goal"`
}

// Updatable profile columns, as stored remotely. Field-level updates are
// validated against this set before anything is written.
const (
	ColFullName            = "full_name"
	ColAvatarURL           = "avatar_url"
	ColLevel               = "level"
	ColGoal                = "goal"
	ColNotifications       = "notifications"
	ColBio                 = "bio"
	ColPreferredDuration   = "preferred_duration"
	ColPreferredCategories = "preferred_categories"
	ColIsPublic            = "is_public"
	ColWeight              = "weight"
	ColWeightUnits         = "weight_units"
	ColProteinGoal         = "protein_goal"
	ColCarbsGoal           = "carbs_goal"
	ColFatsGoal            = "fats_goal"
	ColWaterGoal           = "water_goal"
)

// ApplyField merges a single remote column value into the snapshot. Used to
// patch the in-memory and cached copies after a confirmed single-field write.
func (p *Profile) ApplyField(column string, value interface{}) error {
	switch column {
	case ColFullName:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		p.Name = s
	case ColAvatarURL:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		p.AvatarURL = &s
	case ColLevel:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		level, err := ParseLevel(s)
		if err != nil {
			return err
		}
		p.Level = level
	case ColGoal:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		p.Goal = s
	case ColNotifications:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrInvalidField, column, value)
		}
		p.Notifications = b
	case ColBio:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		p.Bio = s
	case ColPreferredDuration:
		n, err := asNumber(column, value)
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("%w: %s must be >= 1", ErrInvalidField, column)
		}
		p.PreferredDuration = int(n)
	case ColPreferredCategories:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		p.PreferredCategories = s
	case ColIsPublic:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrInvalidField, column, value)
		}
		p.IsPublic = b
	case ColWeight:
		n, err := asNumber(column, value)
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidField, column)
		}
		p.Weight = n
	case ColWeightUnits:
		s, err := asString(column, value)
		if err != nil {
			return err
		}
		unit, err := ParseWeightUnit(s)
		if err != nil {
			return err
		}
		p.WeightUnits = unit
	case ColProteinGoal, ColCarbsGoal, ColFatsGoal, ColWaterGoal:
		n, err := asNumber(column, value)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalidField, column)
		}
		switch column {
		case ColProteinGoal:
			p.ProteinGoal = n
		case ColCarbsGoal:
			p.CarbsGoal = n
		case ColFatsGoal:
			p.FatsGoal = n
		case ColWaterGoal:
			p.WaterGoal = n
		}
	default:
		return fmt.Errorf("%w: unknown column %q", ErrInvalidField, column)
	}
	return nil
}

func asString(column string, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s wants string, got %T", ErrInvalidField, column, value)
	}
	return s, nil
}

func asNumber(column string, value interface{}) (float64, error) {
	switch n := value.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %s wants number, got %T", ErrInvalidField, column, value)
}
