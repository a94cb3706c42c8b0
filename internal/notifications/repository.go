package notifications

import (
	"context"
	"time"
)

// Repository defines notification queue persistence operations.
type Repository interface {
	Enqueue(ctx context.Context, item *QueueItem) error

	// FetchPending claims up to limit pending items that are due for
	// delivery. Claimed items are not visible to concurrent fetches.
	FetchPending(ctx context.Context, limit int) ([]*QueueItem, error)

	MarkAsSent(ctx context.Context, id string) error
	MarkAsFailed(ctx context.Context, id string, cause error) error
	MarkForRetry(ctx context.Context, id string, cause error, nextAttemptAt time.Time) error
}
