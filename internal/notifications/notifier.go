// Package notifications queues assignment notifications and delivers them
// out of band through configured channels.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/ctxlog"
)

// UserDirectory resolves assignees to their contact details.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// NotifierConfig holds queueing settings.
type NotifierConfig struct {
	MaxAttempts int

	// TelegramChatID, when set, receives a copy of every assignment
	// notification in addition to the assignee's email.
	TelegramChatID string
}

// Notifier enqueues assignment notifications. It satisfies the incidents
// package's notifier contract: enqueueing only, no synchronous delivery.
type Notifier struct {
	config NotifierConfig
	repo   Repository
	users  UserDirectory
}

// NewNotifier creates a queue-backed notifier.
func NewNotifier(config NotifierConfig, repo Repository, users UserDirectory) *Notifier {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	return &Notifier{config: config, repo: repo, users: users}
}

// NotifyAssignment queues delivery of an assignment notification to the
// assignee's email, plus the shared Telegram channel when configured.
func (n *Notifier) NotifyAssignment(ctx context.Context, incident *domain.Incident, assigneeID string) error {
	assignee, err := n.users.GetUserByID(ctx, assigneeID)
	if err != nil {
		return fmt.Errorf("resolve assignee %s: %w", assigneeID, err)
	}

	payload := AssignmentPayload{
		IncidentID:    incident.ID,
		IncidentTitle: incident.Title,
		Severity:      string(incident.Severity),
		Status:        string(incident.Status),
		AssigneeID:    assignee.ID,
		AssigneeName:  assignee.DisplayName,
	}

	now := time.Now().UTC()
	items := []*QueueItem{{
		ID:            uuid.NewString(),
		IncidentID:    incident.ID,
		Channel:       ChannelEmail,
		Recipient:     assignee.Email,
		Payload:       payload,
		Status:        QueueStatusPending,
		MaxAttempts:   n.config.MaxAttempts,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}}

	if n.config.TelegramChatID != "" {
		items = append(items, &QueueItem{
			ID:            uuid.NewString(),
			IncidentID:    incident.ID,
			Channel:       ChannelTelegram,
			Recipient:     n.config.TelegramChatID,
			Payload:       payload,
			Status:        QueueStatusPending,
			MaxAttempts:   n.config.MaxAttempts,
			NextAttemptAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	for _, item := range items {
		if err := n.repo.Enqueue(ctx, item); err != nil {
			return fmt.Errorf("enqueue %s notification: %w", item.Channel, err)
		}
		recordQueueDepthChange(1)
		ctxlog.FromContext(ctx).Debug("assignment notification queued",
			"incident_id", incident.ID,
			"channel", item.Channel,
			"item_id", item.ID,
		)
	}

	return nil
}
