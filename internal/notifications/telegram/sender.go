// Package telegram provides telegram notification sending via the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Domikas122/ITSM-System-VIKO/internal/notifications"
)

const defaultAPIBase = "https://api.telegram.org"

// Config holds telegram sender configuration.
type Config struct {
	Enabled  bool
	BotToken string

	// RateLimit is the maximum send rate in messages per second. The Bot
	// API throttles around 30 msg/s globally; default is well below that.
	RateLimit float64

	// APIBase overrides the Bot API endpoint, used in tests.
	APIBase string
}

// Sender implements telegram notification sending.
type Sender struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
}

// NewSender creates a new telegram sender.
// Returns error if enabled but required config is missing.
func NewSender(config Config) (*Sender, error) {
	if config.Enabled {
		if config.BotToken == "" {
			return nil, errors.New("telegram sender: bot token is required when enabled")
		}
	}

	if config.RateLimit <= 0 {
		config.RateLimit = 10
	}
	if config.APIBase == "" {
		config.APIBase = defaultAPIBase
	}

	slog.Info("telegram sender configured",
		"enabled", config.Enabled,
		"rate_limit", config.RateLimit,
	)

	return &Sender{
		config:  config,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}, nil
}

// Channel returns the delivery channel this sender serves.
func (s *Sender) Channel() notifications.Channel {
	return notifications.ChannelTelegram
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers a notification to a telegram chat, respecting the rate limit.
func (s *Sender) Send(ctx context.Context, notification notifications.Notification) error {
	if !s.config.Enabled {
		slog.Debug("telegram sender disabled, skipping", "to", notification.To)
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return notifications.NewRetryableError(fmt.Errorf("rate limiter: %w", err))
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID: notification.To,
		Text:   notification.Body,
	})
	if err != nil {
		return notifications.NewNonRetryableError(fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.config.APIBase, s.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return notifications.NewNonRetryableError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return notifications.NewRetryableError(fmt.Errorf("call telegram api: %w", err))
	}
	defer resp.Body.Close()

	var apiResp sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return notifications.NewRetryableError(fmt.Errorf("decode response: %w", err))
	}

	if !apiResp.OK {
		err := fmt.Errorf("telegram api error %d: %s", apiResp.ErrorCode, apiResp.Description)
		// 429 and 5xx are worth retrying, client errors are not
		if apiResp.ErrorCode == http.StatusTooManyRequests || apiResp.ErrorCode >= 500 {
			return notifications.NewRetryableError(err)
		}
		return notifications.NewNonRetryableError(err)
	}

	return nil
}
