package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/repository"
)

type sendRecordRepository struct {
	db *pgxpool.Pool
}

// NewSendRecordRepository creates a new PostgreSQL send record repository
func NewSendRecordRepository(db *pgxpool.Pool) repository.SendRecordRepository {
	return &sendRecordRepository{
		db: db,
	}
}

func (r *sendRecordRepository) Append(ctx context.Context, record *entity.SendRecord) error {
	query := `
		INSERT INTO notification_sends (id, user_id, template_id, category, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.TemplateID,
		record.Category,
		record.SentAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append send record: %w", err)
	}

	return nil
}

func (r *sendRecordRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notification_sends
		WHERE user_id = $1 AND sent_at >= $2
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count send records: %w", err)
	}

	return count, nil
}

func (r *sendRecordRepository) LastCategorySend(ctx context.Context, userID string, category entity.Category) (*time.Time, error) {
	query := `
		SELECT sent_at
		FROM notification_sends
		WHERE user_id = $1 AND category = $2
		ORDER BY sent_at DESC
		LIMIT 1
	`

	var sentAt time.Time
	err := r.db.QueryRow(ctx, query, userID, category).Scan(&sentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last category send: %w", err)
	}

	return &sentAt, nil
}

func (r *sendRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM notification_sends
		WHERE sent_at < $1
	`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune send records: %w", err)
	}

	return tag.RowsAffected(), nil
}
