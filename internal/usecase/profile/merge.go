package profile

import (
	"github.com/wellgym/wellgym-backend/internal/domain"
)

// Merge precedence is a fixed three-way chain per field: the remote value wins
// when it is present and non-null (non-empty for strings); otherwise the
// cached snapshot's value is kept; otherwise the hard-coded default applies.
// Each field goes through an explicit resolver so the precedence stays
// auditable instead of being nil-coalesced ad hoc at call sites.

type source struct {
	remote *domain.ProfileRecord
	cached *domain.Profile
}

func (s source) str(remote *string, cached func(*domain.Profile) string, def string) string {
	if remote != nil && *remote != "" {
		return *remote
	}
	if s.cached != nil {
		return cached(s.cached)
	}
	return def
}

func (s source) boolean(remote *bool, cached func(*domain.Profile) bool, def bool) bool {
	if remote != nil {
		return *remote
	}
	if s.cached != nil {
		return cached(s.cached)
	}
	return def
}

func (s source) integer(remote *int, cached func(*domain.Profile) int, def int) int {
	if remote != nil {
		return *remote
	}
	if s.cached != nil {
		return cached(s.cached)
	}
	return def
}

func (s source) float(remote *float64, cached func(*domain.Profile) float64, def float64) float64 {
	if remote != nil {
		return *remote
	}
	if s.cached != nil {
		return cached(s.cached)
	}
	return def
}

// merge builds the resolved snapshot for an identity from the remote row (may
// be nil: missing row is valid) and the cached snapshot (may be nil).
func merge(identity *domain.Identity, remote *domain.ProfileRecord, cached *domain.Profile) *domain.Profile {
	s := source{remote: remote, cached: cached}
	if remote == nil {
		remote = &domain.ProfileRecord{}
	}

	p := &domain.Profile{
		ID:       identity.ID,
		Email:    identity.Email,
		JoinedAt: identity.CreatedAt,

		Name: s.str(remote.FullName, func(c *domain.Profile) string { return c.Name }, identity.Email),
		Goal: s.str(remote.Goal, func(c *domain.Profile) string { return c.Goal }, domain.DefaultGoal),
		Bio:  s.str(remote.Bio, func(c *domain.Profile) string { return c.Bio }, ""),
		PreferredCategories: s.str(remote.PreferredCategories,
			func(c *domain.Profile) string { return c.PreferredCategories }, ""),

		Notifications: s.boolean(remote.Notifications, func(c *domain.Profile) bool { return c.Notifications }, true),
		IsPublic:      s.boolean(remote.IsPublic, func(c *domain.Profile) bool { return c.IsPublic }, true),

		PreferredDuration: s.integer(remote.PreferredDuration,
			func(c *domain.Profile) int { return c.PreferredDuration }, domain.DefaultPreferredDuration),

		Weight:      s.float(remote.Weight, func(c *domain.Profile) float64 { return c.Weight }, domain.DefaultWeightKg),
		ProteinGoal: s.float(remote.ProteinGoal, func(c *domain.Profile) float64 { return c.ProteinGoal }, domain.DefaultProteinGoalG),
		CarbsGoal:   s.float(remote.CarbsGoal, func(c *domain.Profile) float64 { return c.CarbsGoal }, domain.DefaultCarbsGoalG),
		FatsGoal:    s.float(remote.FatsGoal, func(c *domain.Profile) float64 { return c.FatsGoal }, domain.DefaultFatsGoalG),
		WaterGoal:   s.float(remote.WaterGoal, func(c *domain.Profile) float64 { return c.WaterGoal }, domain.DefaultWaterGoalL),
	}

	// avatar_url stays nullable; remote wins, then cache.
	if remote.AvatarURL != nil && *remote.AvatarURL != "" {
		p.AvatarURL = remote.AvatarURL
	} else if cached != nil {
		p.AvatarURL = cached.AvatarURL
	}

	// Enum fields fall through the same chain when the remote value does not
	// parse; a bad row must never poison the snapshot.
	rawLevel := s.str(remote.Level, func(c *domain.Profile) string { return string(c.Level) }, string(domain.DefaultLevel))
	if level, err := domain.ParseLevel(rawLevel); err == nil {
		p.Level = level
	} else {
		p.Level = domain.DefaultLevel
	}

	rawUnits := s.str(remote.WeightUnits, func(c *domain.Profile) string { return string(c.WeightUnits) }, string(domain.UnitKg))
	if unit, err := domain.ParseWeightUnit(rawUnits); err == nil {
		p.WeightUnits = unit
	} else {
		p.WeightUnits = domain.UnitKg
	}

	return p
}
