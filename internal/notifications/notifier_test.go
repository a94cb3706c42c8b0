package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

type mockDirectory struct {
	users map[string]*domain.User
}

func (m *mockDirectory) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return user, nil
}

func testIncident() *domain.Incident {
	assignee := "u-1"
	return &domain.Incident{
		ID:         "inc-1",
		Title:      "Email server down",
		Severity:   domain.SeverityHigh,
		Status:     domain.IncidentStatusAssigned,
		AssignedTo: &assignee,
	}
}

func TestNotifyAssignment(t *testing.T) {
	directory := &mockDirectory{users: map[string]*domain.User{
		"u-1": {ID: "u-1", DisplayName: "J. Doe", Email: "jdoe@example.com"},
	}}

	t.Run("queues email for assignee", func(t *testing.T) {
		repo := newMockQueueRepo()
		notifier := NewNotifier(NotifierConfig{MaxAttempts: 3}, repo, directory)

		err := notifier.NotifyAssignment(context.Background(), testIncident(), "u-1")
		require.NoError(t, err)

		require.Len(t, repo.items, 1)
		for _, item := range repo.items {
			assert.Equal(t, ChannelEmail, item.Channel)
			assert.Equal(t, "jdoe@example.com", item.Recipient)
			assert.Equal(t, QueueStatusPending, item.Status)
			assert.Equal(t, 3, item.MaxAttempts)
			assert.Equal(t, "inc-1", item.Payload.IncidentID)
			assert.Equal(t, "J. Doe", item.Payload.AssigneeName)
			assert.Equal(t, "high", item.Payload.Severity)
		}
	})

	t.Run("also queues telegram when chat configured", func(t *testing.T) {
		repo := newMockQueueRepo()
		notifier := NewNotifier(NotifierConfig{
			MaxAttempts:    3,
			TelegramChatID: "-100200300",
		}, repo, directory)

		err := notifier.NotifyAssignment(context.Background(), testIncident(), "u-1")
		require.NoError(t, err)

		require.Len(t, repo.items, 2)

		channels := make(map[Channel]string)
		for _, item := range repo.items {
			channels[item.Channel] = item.Recipient
		}
		assert.Equal(t, "jdoe@example.com", channels[ChannelEmail])
		assert.Equal(t, "-100200300", channels[ChannelTelegram])
	})

	t.Run("unknown assignee", func(t *testing.T) {
		repo := newMockQueueRepo()
		notifier := NewNotifier(NotifierConfig{}, repo, directory)

		err := notifier.NotifyAssignment(context.Background(), testIncident(), "ghost")
		assert.Error(t, err)
		assert.Empty(t, repo.items)
	})
}

func TestRendererUnknownChannel(t *testing.T) {
	_, _, err := NewRenderer("").Render(Channel("pager"), AssignmentPayload{})
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
