// Package cache holds the session-scoped profile snapshot. The cache is an
// optimization, not a correctness requirement: it lets the client render the
// last known profile before the remote fetch completes. Implementations are
// best-effort: storage failures are logged and swallowed, never returned.
package cache

import (
	"context"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// Store is the session cache contract. It is an injected dependency so tests
// can substitute the in-memory implementation.
type Store interface {
	// Read returns the cached snapshot for the user, if any.
	Read(ctx context.Context, userID string) (*domain.Profile, bool)
	// Write replaces the cached snapshot and marks the session loaded.
	Write(ctx context.Context, userID string, p *domain.Profile)
	// Patch merges a single confirmed field write into the cached snapshot,
	// creating one with just that field when nothing is cached yet.
	Patch(ctx context.Context, userID, column string, value interface{})
}
