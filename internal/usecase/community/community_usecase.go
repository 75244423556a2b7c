package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/realtime"
	"github.com/wellgym/wellgym-backend/internal/repository"
	"github.com/wellgym/wellgym-backend/internal/usecase/auth"
	"github.com/wellgym/wellgym-backend/internal/usecase/profile"
)

const defaultListLimit = 100

type UseCase struct {
	identity auth.IdentityProvider
	profiles *profile.UseCase
	store    repository.MessageStore
	hub      *realtime.Hub
	now      func() time.Time
}

func NewUseCase(
	identity auth.IdentityProvider,
	profiles *profile.UseCase,
	store repository.MessageStore,
	hub *realtime.Hub,
) *UseCase {
	return &UseCase{
		identity: identity,
		profiles: profiles,
		store:    store,
		hub:      hub,
		now:      time.Now,
	}
}

func (uc *UseCase) List(ctx context.Context, limit int) ([]domain.Message, error) {
	if _, err := uc.identity.Current(ctx); err != nil {
		return nil, authErr(err)
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return uc.store.List(ctx, limit)
}

// Post persists the message, then pushes it to subscribers. The push is
// best-effort; the row store is the source of truth.
func (uc *UseCase) Post(ctx context.Context, body string) (*domain.Message, error) {
	p, err := uc.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	m := &domain.Message{
		ID:        uuid.NewString(),
		UserID:    p.ID,
		Author:    p.Name,
		Body:      body,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.store.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	uc.hub.Broadcast(m)
	return m, nil
}

func authErr(err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
}
