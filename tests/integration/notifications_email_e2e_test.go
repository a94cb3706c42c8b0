//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	identitypostgres "github.com/Domikas122/ITSM-System-VIKO/internal/identity/postgres"
	"github.com/Domikas122/ITSM-System-VIKO/internal/notifications"
	"github.com/Domikas122/ITSM-System-VIKO/internal/notifications/email"
	notificationspostgres "github.com/Domikas122/ITSM-System-VIKO/internal/notifications/postgres"
)

// TestAssignmentEmailDelivery drives the full path: notifier enqueues, worker
// claims, SMTP sender delivers, Mailpit receives.
func TestAssignmentEmailDelivery(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, mailpitClient.DeleteAllMessages())

	queueRepo := notificationspostgres.NewRepository(testDB)
	userRepo := identitypostgres.NewRepository(testDB)

	notifier := notifications.NewNotifier(notifications.NotifierConfig{
		MaxAttempts: 3,
	}, queueRepo, userRepo)

	emailSender, err := email.NewSender(email.Config{
		Enabled:     true,
		SMTPHost:    mailpitContainer.SMTPHost,
		SMTPPort:    mailpitContainer.SMTPPort,
		FromAddress: "tracker@example.com",
	})
	require.NoError(t, err)

	dispatcher := notifications.NewDispatcher(emailSender)
	renderer := notifications.NewRenderer("https://tracker.example.com")

	worker := notifications.NewWorker(notifications.WorkerConfig{
		BatchSize:         10,
		PollInterval:      200 * time.Millisecond,
		MaxAttempts:       3,
		InitialBackoff:    time.Second,
		MaxBackoff:        time.Minute,
		BackoffMultiplier: 2.0,
		NumWorkers:        1,
	}, queueRepo, dispatcher, renderer)

	incident := &domain.Incident{
		ID:       "3f0c2a44-9d10-4c64-8a7e-2d6b1f5c9e01",
		Title:    "Backup job failing on the primary file server",
		Severity: domain.SeverityHigh,
		Status:   domain.IncidentStatusAssigned,
	}

	require.NoError(t, notifier.NotifyAssignment(ctx, incident, specialistID))

	worker.Start(ctx)
	defer worker.Stop()

	messages, err := mailpitClient.WaitForMessages(1, 10*time.Second)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Contains(t, msg.Subject, "[HIGH]")
	assert.Contains(t, msg.Subject, incident.Title)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "admin@example.com", msg.To[0].Address)

	full, err := mailpitClient.GetMessageByID(msg.ID)
	require.NoError(t, err)
	assert.Contains(t, full.Text, "https://tracker.example.com/incidents/"+incident.ID)
	assert.Contains(t, full.Text, "Admin Specialist")

	// The queue item ends up marked as sent
	var status string
	err = testDB.QueryRow(ctx,
		"SELECT status FROM notification_queue WHERE incident_id = $1", incident.ID,
	).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "sent", status)
}
