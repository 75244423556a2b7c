package profile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/cache"
	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/prefs"
	"github.com/wellgym/wellgym-backend/internal/repository"
	"github.com/wellgym/wellgym-backend/internal/usecase/auth"
)

// UseCase owns the canonical profile snapshot. Reads reconcile the remote row
// with the session cache; writes are confirmed-write: remote first, local
// state only after success.
type UseCase struct {
	identity auth.IdentityProvider
	store    repository.ProfileStore
	cache    cache.Store
	logger   *zap.Logger
}

func NewUseCase(
	identity auth.IdentityProvider,
	store repository.ProfileStore,
	cacheStore cache.Store,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		identity: identity,
		store:    store,
		cache:    cacheStore,
		logger:   logger,
	}
}

// UpdateRequest is the bulk-edit payload. Pointer fields distinguish "leave
// alone" from "set". Used by the full-profile edit form.
type UpdateRequest struct {
	FullName            *string  `json:"full_name" binding:"omitempty,min=1,max=100"`
	AvatarURL           *string  `json:"avatar_url" binding:"omitempty,url"`
	Level               *string  `json:"level" binding:"omitempty,fitlevel"`
	Goal                *string  `json:"goal" binding:"omitempty,max=100"`
	Notifications       *bool    `json:"notifications"`
	Bio                 *string  `json:"bio" binding:"omitempty,max=500"`
	PreferredDuration   *int     `json:"preferred_duration" binding:"omitempty,min=1"`
	PreferredCategories *string  `json:"preferred_categories"`
	IsPublic            *bool    `json:"is_public"`
	Weight              *float64 `json:"weight" binding:"omitempty,gt=0"`
	WeightUnits         *string  `json:"weight_units" binding:"omitempty,weightunit"`
	ProteinGoal         *float64 `json:"protein_goal" binding:"omitempty,min=0"`
	CarbsGoal           *float64 `json:"carbs_goal" binding:"omitempty,min=0"`
	FatsGoal            *float64 `json:"fats_goal" binding:"omitempty,min=0"`
	WaterGoal           *float64 `json:"water_goal" binding:"omitempty,min=0"`
}

func (r *UpdateRequest) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if r.FullName != nil {
		cols[domain.ColFullName] = *r.FullName
	}
	if r.AvatarURL != nil {
		cols[domain.ColAvatarURL] = *r.AvatarURL
	}
	if r.Level != nil {
		cols[domain.ColLevel] = *r.Level
	}
	if r.Goal != nil {
		cols[domain.ColGoal] = *r.Goal
	}
	if r.Notifications != nil {
		cols[domain.ColNotifications] = *r.Notifications
	}
	if r.Bio != nil {
		cols[domain.ColBio] = *r.Bio
	}
	if r.PreferredDuration != nil {
		cols[domain.ColPreferredDuration] = *r.PreferredDuration
	}
	if r.PreferredCategories != nil {
		cols[domain.ColPreferredCategories] = *r.PreferredCategories
	}
	if r.IsPublic != nil {
		cols[domain.ColIsPublic] = *r.IsPublic
	}
	if r.Weight != nil {
		cols[domain.ColWeight] = *r.Weight
	}
	if r.WeightUnits != nil {
		cols[domain.ColWeightUnits] = *r.WeightUnits
	}
	if r.ProteinGoal != nil {
		cols[domain.ColProteinGoal] = *r.ProteinGoal
	}
	if r.CarbsGoal != nil {
		cols[domain.ColCarbsGoal] = *r.CarbsGoal
	}
	if r.FatsGoal != nil {
		cols[domain.ColFatsGoal] = *r.FatsGoal
	}
	if r.WaterGoal != nil {
		cols[domain.ColWaterGoal] = *r.WaterGoal
	}
	return cols
}

// Load resolves the current profile. The remote row wins per field, the cached
// snapshot fills nulls, defaults fill the rest; the merged result is written
// back to the cache. A missing remote row is valid. Only a failed identity
// check is fatal.
func (uc *UseCase) Load(ctx context.Context) (*domain.Profile, error) {
	identity, err := uc.currentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	record, err := uc.store.Get(ctx, identity.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		// Row fetch trouble is not fatal: the cache and defaults still allow
		// a usable snapshot.
		uc.logger.Warn("profile row fetch failed, merging without remote",
			zap.String("user_id", identity.ID), zap.Error(err))
		record = nil
	}

	cached, _ := uc.cache.Read(ctx, identity.ID)
	merged := merge(identity, record, cached)
	uc.cache.Write(ctx, identity.ID, merged)
	return merged, nil
}

// UpdateField upserts a single column, then patches the cache. No optimistic
// apply: a remote rejection leaves local state untouched.
func (uc *UseCase) UpdateField(ctx context.Context, column string, value interface{}) (*domain.Profile, error) {
	identity, err := uc.currentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	// Validate before any write so a bad payload cannot half-apply.
	scratch := domain.Profile{}
	if err := scratch.ApplyField(column, value); err != nil {
		return nil, err
	}

	if err := uc.store.Upsert(ctx, identity.ID, map[string]interface{}{column: value}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailed, column, err)
	}

	uc.cache.Patch(ctx, identity.ID, column, value)

	snapshot, ok := uc.cache.Read(ctx, identity.ID)
	if !ok {
		// Cache write may have been swallowed; rebuild from the remote row so
		// the response does not snap other fields back to defaults.
		record, err := uc.store.Get(ctx, identity.ID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			uc.logger.Warn("profile row refetch failed after update",
				zap.String("user_id", identity.ID), zap.Error(err))
			record = nil
		}
		snapshot = merge(identity, record, nil)
		_ = snapshot.ApplyField(column, value)
		uc.cache.Write(ctx, identity.ID, snapshot)
	}
	return snapshot, nil
}

// SaveBulk upserts a set of fields atomically from the caller's point of view:
// the cache sees either none of them (on failure) or all of them.
func (uc *UseCase) SaveBulk(ctx context.Context, req *UpdateRequest) (*domain.Profile, error) {
	identity, err := uc.currentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	cols := req.columns()
	if len(cols) == 0 {
		return uc.Load(ctx)
	}

	if err := uc.store.Upsert(ctx, identity.ID, cols); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	cached, _ := uc.cache.Read(ctx, identity.ID)
	snapshot := merge(identity, nil, cached)
	for column, value := range cols {
		if err := snapshot.ApplyField(column, value); err != nil {
			uc.logger.Warn("saved column skipped in snapshot", zap.String("column", column), zap.Error(err))
		}
	}
	uc.cache.Write(ctx, identity.ID, snapshot)
	return snapshot, nil
}

// ReplaceCategoriesForLevel rewrites one level's preferred category list
// without clobbering the lists saved for other levels. Legacy flat values are
// upgraded to the per-level form on the way through.
func (uc *UseCase) ReplaceCategoriesForLevel(ctx context.Context, level domain.Level, categories []string) (*domain.Profile, error) {
	current, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}

	raw := prefs.Merge(current.PreferredCategories, string(level), categories)
	return uc.UpdateField(ctx, domain.ColPreferredCategories, raw)
}

func (uc *UseCase) currentIdentity(ctx context.Context) (*domain.Identity, error) {
	identity, err := uc.identity.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return identity, nil
}
