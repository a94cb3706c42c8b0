// Package postgres provides PostgreSQL implementation of notifications repository.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domikas122/ITSM-System-VIKO/internal/notifications"
)

// Repository implements notifications.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Enqueue inserts a new queue item in pending state.
func (r *Repository) Enqueue(ctx context.Context, item *notifications.QueueItem) error {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO notification_queue (
			id, incident_id, channel, recipient, payload, status,
			attempts, max_attempts, next_attempt_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query,
		item.ID,
		item.IncidentID,
		item.Channel,
		item.Recipient,
		payload,
		item.Status,
		item.Attempts,
		item.MaxAttempts,
		item.NextAttemptAt,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// FetchPending claims up to limit due pending items by moving them to
// processing. SKIP LOCKED keeps concurrent workers from claiming the same
// rows.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]*notifications.QueueItem, error) {
	query := `
		UPDATE notification_queue
		SET status = 'processing', updated_at = NOW()
		WHERE id IN (
			SELECT id FROM notification_queue
			WHERE status = 'pending' AND next_attempt_at <= NOW()
			ORDER BY next_attempt_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, incident_id, channel, recipient, payload, status,
		          attempts, max_attempts, next_attempt_at,
		          COALESCE(last_error, ''), created_at, updated_at, sent_at
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending notifications: %w", err)
	}
	defer rows.Close()

	items := make([]*notifications.QueueItem, 0)
	for rows.Next() {
		var (
			item       notifications.QueueItem
			rawPayload []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.IncidentID,
			&item.Channel,
			&item.Recipient,
			&rawPayload,
			&item.Status,
			&item.Attempts,
			&item.MaxAttempts,
			&item.NextAttemptAt,
			&item.LastError,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}

		if err := json.Unmarshal(rawPayload, &item.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload for item %s: %w", item.ID, err)
		}

		items = append(items, &item)
	}
	return items, rows.Err()
}

// MarkAsSent marks a queue item as successfully delivered.
func (r *Repository) MarkAsSent(ctx context.Context, id string) error {
	query := `
		UPDATE notification_queue
		SET status = 'sent', attempts = attempts + 1, sent_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark as sent: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notifications.ErrItemNotFound
	}
	return nil
}

// MarkAsFailed marks a queue item as permanently failed.
func (r *Repository) MarkAsFailed(ctx context.Context, id string, cause error) error {
	query := `
		UPDATE notification_queue
		SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, id, cause.Error())
	if err != nil {
		return fmt.Errorf("mark as failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notifications.ErrItemNotFound
	}
	return nil
}

// MarkForRetry reschedules a queue item for a later delivery attempt.
func (r *Repository) MarkForRetry(ctx context.Context, id string, cause error, nextAttemptAt time.Time) error {
	query := `
		UPDATE notification_queue
		SET status = 'pending', attempts = attempts + 1, last_error = $2,
		    next_attempt_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, id, cause.Error(), nextAttemptAt)
	if err != nil {
		return fmt.Errorf("mark for retry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notifications.ErrItemNotFound
	}
	return nil
}
