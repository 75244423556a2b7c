package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/cache"
	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/prefs"
)

type stubIdentity struct {
	identity *domain.Identity
	err      error
}

func (s *stubIdentity) Current(context.Context) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

type stubProfileStore struct {
	record    *domain.ProfileRecord
	getErr    error
	upsertErr error
	upserts   []map[string]interface{}
}

func (s *stubProfileStore) Get(context.Context, string) (*domain.ProfileRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.record == nil {
		return nil, domain.ErrProfileNotFound
	}
	return s.record, nil
}

func (s *stubProfileStore) Upsert(_ context.Context, _ string, columns map[string]interface{}) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, columns)
	return nil
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:        "user-1",
		Email:     "anna@example.com",
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func newTestUseCase(store *stubProfileStore) (*UseCase, *cache.MemoryStore) {
	mem := cache.NewMemoryStore()
	uc := NewUseCase(&stubIdentity{identity: testIdentity()}, store, mem, zap.NewNop())
	return uc, mem
}

func sptr(s string) *string   { return &s }
func bptr(b bool) *bool       { return &b }
func fptr(f float64) *float64 { return &f }

func TestLoadMissingRowYieldsDefaults(t *testing.T) {
	uc, mem := newTestUseCase(&stubProfileStore{})

	p, err := uc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "anna@example.com", p.Name, "name falls back to the account email")
	assert.Equal(t, domain.LevelNeofita, p.Level)
	assert.Equal(t, domain.DefaultGoal, p.Goal)
	assert.Equal(t, domain.DefaultPreferredDuration, p.PreferredDuration)
	assert.Equal(t, domain.DefaultWeightKg, p.Weight)
	assert.Equal(t, domain.UnitKg, p.WeightUnits)
	assert.True(t, p.Notifications)
	assert.True(t, p.IsPublic)
	assert.Nil(t, p.AvatarURL)

	cached, ok := mem.Read(context.Background(), "user-1")
	require.True(t, ok, "resolved snapshot is written through to the cache")
	assert.Equal(t, *p, *cached)
}

func TestLoadRemoteValueWinsOverCache(t *testing.T) {
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:     "user-1",
		Weight: fptr(82),
	}}
	uc, mem := newTestUseCase(store)
	mem.Write(context.Background(), "user-1", &domain.Profile{ID: "user-1", Weight: 75})

	p, err := uc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 82.0, p.Weight)
}

func TestLoadNullRemoteKeepsCachedFalse(t *testing.T) {
	// Remote row exists but notifications is null; the cached snapshot holds a
	// deliberate false, which must survive instead of snapping back to the
	// default true.
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:       "user-1",
		FullName: sptr("Anna"),
	}}
	uc, mem := newTestUseCase(store)
	mem.Write(context.Background(), "user-1", &domain.Profile{
		ID:            "user-1",
		Notifications: false,
		IsPublic:      true,
	})

	p, err := uc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Anna", p.Name)
	assert.False(t, p.Notifications)
}

func TestLoadRemoteFetchFailureMergesFromCache(t *testing.T) {
	store := &stubProfileStore{getErr: errors.New("connection refused")}
	uc, mem := newTestUseCase(store)
	mem.Write(context.Background(), "user-1", &domain.Profile{
		ID:     "user-1",
		Name:   "Anna",
		Weight: 68,
	})

	p, err := uc.Load(context.Background())
	require.NoError(t, err, "a failed row fetch degrades to cache plus defaults")
	assert.Equal(t, "Anna", p.Name)
	assert.Equal(t, 68.0, p.Weight)
}

func TestLoadUnauthenticated(t *testing.T) {
	uc := NewUseCase(&stubIdentity{err: domain.ErrUnauthenticated}, &stubProfileStore{}, cache.NewMemoryStore(), zap.NewNop())

	_, err := uc.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLoadBadLevelRowFallsBackToDefault(t *testing.T) {
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:    "user-1",
		Level: sptr("Olympian"),
	}}
	uc, _ := newTestUseCase(store)

	p, err := uc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLevel, p.Level)
}

func TestUpdateFieldUnauthenticatedLeavesCache(t *testing.T) {
	store := &stubProfileStore{}
	mem := cache.NewMemoryStore()
	mem.Write(context.Background(), "user-1", &domain.Profile{ID: "user-1", Weight: 70})
	uc := NewUseCase(&stubIdentity{err: domain.ErrUnauthenticated}, store, mem, zap.NewNop())

	_, err := uc.UpdateField(context.Background(), domain.ColWeight, 80.0)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, store.upserts)
	cached, ok := mem.Read(context.Background(), "user-1")
	require.True(t, ok)
	assert.Equal(t, 70.0, cached.Weight, "a rejected write must not touch the cached snapshot")
}

func TestUpdateFieldRemoteRejectionLeavesCache(t *testing.T) {
	store := &stubProfileStore{upsertErr: errors.New("permission denied")}
	uc, mem := newTestUseCase(store)
	mem.Write(context.Background(), "user-1", &domain.Profile{ID: "user-1", Weight: 70})

	_, err := uc.UpdateField(context.Background(), domain.ColWeight, 80.0)

	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	cached, ok := mem.Read(context.Background(), "user-1")
	require.True(t, ok)
	assert.Equal(t, 70.0, cached.Weight)
}

func TestUpdateFieldConfirmedWritePatchesCache(t *testing.T) {
	store := &stubProfileStore{}
	uc, mem := newTestUseCase(store)
	mem.Write(context.Background(), "user-1", &domain.Profile{ID: "user-1", Weight: 70})

	p, err := uc.UpdateField(context.Background(), domain.ColWeight, 80.0)
	require.NoError(t, err)

	assert.Equal(t, 80.0, p.Weight)
	require.Len(t, store.upserts, 1)
	assert.Equal(t, map[string]interface{}{domain.ColWeight: 80.0}, store.upserts[0])
	cached, _ := mem.Read(context.Background(), "user-1")
	assert.Equal(t, 80.0, cached.Weight)
}

// missCache retains nothing, as when the cache backend is down.
type missCache struct{}

func (missCache) Read(context.Context, string) (*domain.Profile, bool) { return nil, false }
func (missCache) Write(context.Context, string, *domain.Profile)       {}
func (missCache) Patch(context.Context, string, string, interface{})   {}

func TestUpdateFieldCacheMissRebuildsFromRemote(t *testing.T) {
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:       "user-1",
		FullName: sptr("Anna"),
		Weight:   fptr(75),
	}}
	uc := NewUseCase(&stubIdentity{identity: testIdentity()}, store, missCache{}, zap.NewNop())

	p, err := uc.UpdateField(context.Background(), domain.ColWeight, 80.0)
	require.NoError(t, err)

	assert.Equal(t, 80.0, p.Weight)
	assert.Equal(t, "Anna", p.Name, "the other remote fields survive a dead cache")
}

func TestUpdateFieldInvalidValueWritesNothing(t *testing.T) {
	store := &stubProfileStore{}
	uc, _ := newTestUseCase(store)

	_, err := uc.UpdateField(context.Background(), domain.ColLevel, "Olympian")

	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Empty(t, store.upserts)
}

func TestSaveBulkAppliesAllColumns(t *testing.T) {
	store := &stubProfileStore{}
	uc, mem := newTestUseCase(store)

	p, err := uc.SaveBulk(context.Background(), &UpdateRequest{
		FullName:      sptr("Anna Rossi"),
		Level:         sptr("Intermedio"),
		Weight:        fptr(64),
		Notifications: bptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Anna Rossi", p.Name)
	assert.Equal(t, domain.LevelIntermedio, p.Level)
	assert.Equal(t, 64.0, p.Weight)
	assert.False(t, p.Notifications)
	require.Len(t, store.upserts, 1)
	assert.Len(t, store.upserts[0], 4)

	cached, ok := mem.Read(context.Background(), "user-1")
	require.True(t, ok)
	assert.Equal(t, *p, *cached)
}

func TestSaveBulkEmptyRequestIsALoad(t *testing.T) {
	store := &stubProfileStore{}
	uc, _ := newTestUseCase(store)

	p, err := uc.SaveBulk(context.Background(), &UpdateRequest{})
	require.NoError(t, err)
	assert.Empty(t, store.upserts)
	assert.Equal(t, domain.LevelNeofita, p.Level)
}

func TestReplaceCategoriesForLevelPreservesOtherLevels(t *testing.T) {
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:                  "user-1",
		PreferredCategories: sptr(`{"Neofita":"Cardio, Forza"}`),
	}}
	uc, _ := newTestUseCase(store)

	p, err := uc.ReplaceCategoriesForLevel(context.Background(), domain.LevelAvanzato, []string{"Yoga", "Mobilità"})
	require.NoError(t, err)

	v := prefs.Parse(p.PreferredCategories)
	assert.Equal(t, []string{"Cardio", "Forza"}, v.CategoriesFor("Neofita"))
	assert.Equal(t, []string{"Yoga", "Mobilità"}, v.CategoriesFor("Avanzato"))
}

func TestReplaceCategoriesUpgradesLegacyFlatValue(t *testing.T) {
	store := &stubProfileStore{record: &domain.ProfileRecord{
		ID:                  "user-1",
		PreferredCategories: sptr("Cardio, Stretching"),
	}}
	uc, _ := newTestUseCase(store)

	p, err := uc.ReplaceCategoriesForLevel(context.Background(), domain.LevelNeofita, []string{"Forza"})
	require.NoError(t, err)

	v := prefs.Parse(p.PreferredCategories)
	assert.False(t, v.IsFlat, "legacy flat value is upgraded to the per-level form")
	assert.Equal(t, []string{"Forza"}, v.CategoriesFor("Neofita"))
}
