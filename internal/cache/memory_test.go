package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

func TestMemoryStoreCopiesSnapshots(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := &domain.Profile{ID: "user-1", Weight: 70}
	s.Write(ctx, "user-1", p)
	p.Weight = 99

	got, ok := s.Read(ctx, "user-1")
	require.True(t, ok)
	assert.Equal(t, 70.0, got.Weight, "mutating the caller's copy must not reach the cache")

	got.Weight = 55
	again, _ := s.Read(ctx, "user-1")
	assert.Equal(t, 70.0, again.Weight)
}

func TestMemoryStoreReadMiss(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.Read(context.Background(), "nobody")
	assert.False(t, ok)
}

func TestMemoryStorePatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Write(ctx, "user-1", &domain.Profile{ID: "user-1", Weight: 70})

	s.Patch(ctx, "user-1", domain.ColWeight, 82.0)

	got, ok := s.Read(ctx, "user-1")
	require.True(t, ok)
	assert.Equal(t, 82.0, got.Weight)
}

func TestMemoryStorePatchInvalidValueKeepsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Write(ctx, "user-1", &domain.Profile{ID: "user-1", Level: domain.LevelIntermedio})

	s.Patch(ctx, "user-1", domain.ColLevel, "Olympian")

	got, ok := s.Read(ctx, "user-1")
	require.True(t, ok)
	assert.Equal(t, domain.LevelIntermedio, got.Level)
}

func TestMemoryStorePatchCreatesEntry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Patch(ctx, "user-1", domain.ColBio, "ciao")

	got, ok := s.Read(ctx, "user-1")
	require.True(t, ok)
	assert.Equal(t, "ciao", got.Bio)
	assert.Equal(t, "user-1", got.ID)
}
