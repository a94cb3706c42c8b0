package notifications

import "time"

// Channel identifies a delivery transport.
type Channel string

// Delivery channels.
const (
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

// QueueStatus represents the status of a queue item.
type QueueStatus string

// Queue statuses.
const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusSent       QueueStatus = "sent"
	QueueStatusFailed     QueueStatus = "failed"
)

// AssignmentPayload carries the data needed to render an assignment
// notification.
type AssignmentPayload struct {
	IncidentID    string `json:"incidentId"`
	IncidentTitle string `json:"incidentTitle"`
	Severity      string `json:"severity"`
	Status        string `json:"status"`
	AssigneeID    string `json:"assigneeId"`
	AssigneeName  string `json:"assigneeName"`
}

// QueueItem represents a notification waiting for delivery.
type QueueItem struct {
	ID            string
	IncidentID    string
	Channel       Channel
	Recipient     string
	Payload       AssignmentPayload
	Status        QueueStatus
	Attempts      int
	MaxAttempts   int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SentAt        *time.Time
}
