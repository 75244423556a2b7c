package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/repository"
)

// updatableColumns guards the dynamic upsert below against arbitrary column
// names reaching the query text.
var updatableColumns = map[string]struct{}{
	domain.ColFullName:            {},
	domain.ColAvatarURL:           {},
	domain.ColLevel:               {},
	domain.ColGoal:                {},
	domain.ColNotifications:       {},
	domain.ColBio:                 {},
	domain.ColPreferredDuration:   {},
	domain.ColPreferredCategories: {},
	domain.ColIsPublic:            {},
	domain.ColWeight:              {},
	domain.ColWeightUnits:         {},
	domain.ColProteinGoal:         {},
	domain.ColCarbsGoal:           {},
	domain.ColFatsGoal:            {},
	domain.ColWaterGoal:           {},
}

type profileStore struct {
	db *sqlx.DB
}

func NewProfileStore(db *sqlx.DB) repository.ProfileStore {
	return &profileStore{db: db}
}

func (s *profileStore) Get(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	var rec domain.ProfileRecord
	query := `
		SELECT id, full_name, avatar_url, level, goal, notifications, bio,
		       preferred_duration, preferred_categories, is_public,
		       weight, weight_units, protein_goal, carbs_goal, fats_goal, water_goal
		FROM profiles WHERE id = $1
	`
	err := s.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *profileStore) Upsert(ctx context.Context, id string, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	// Deterministic column order keeps the generated SQL stable.
	names := make([]string, 0, len(columns))
	for name := range columns {
		if _, ok := updatableColumns[name]; !ok {
			return fmt.Errorf("%w: column %q is not updatable", domain.ErrInvalidField, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	cols := []string{"id"}
	placeholders := []string{"$1"}
	updates := make([]string, 0, len(names))
	args := []interface{}{id}
	for i, name := range names {
		cols = append(cols, name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", name, name))
		args = append(args, columns[name])
	}

	query := fmt.Sprintf(
		`INSERT INTO profiles (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}
