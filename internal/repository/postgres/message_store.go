package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/repository"
)

type messageStore struct {
	db *sqlx.DB
}

func NewMessageStore(db *sqlx.DB) repository.MessageStore {
	return &messageStore{db: db}
}

func (s *messageStore) List(ctx context.Context, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	query := `
		SELECT id, user_id, author, body, created_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT $1
	`
	err := s.db.SelectContext(ctx, &messages, query, limit)
	return messages, err
}

func (s *messageStore) Insert(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO messages (id, user_id, author, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, m.ID, m.UserID, m.Author, m.Body, m.CreatedAt)
	return err
}
