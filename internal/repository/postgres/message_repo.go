package postgres

import (
	"context"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

// Create inserts the message inside its own transaction so the caller never
// observes a saved-but-uncommitted row.
func (r *messageRepo) Create(ctx context.Context, m *domain.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO messages (email, name, subject, body, created_at)
              VALUES ($1, $2, $3, $4, now()) RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query, m.Email, m.Name, m.Subject, m.Body).Scan(&m.ID, &m.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	metrics.MessagesSaved.Inc()
	return nil
}

func (r *messageRepo) ListRecent(ctx context.Context, limit int) ([]domain.Message, error) {
	query := `SELECT id, name, email, subject, body, created_at
              FROM messages ORDER BY id DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, limit)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
