// Package notify delivers detection alerts. Delivery is fire-and-forget:
// failures are logged by the caller, never propagated into the cycle.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// Notifier sends a text alert.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// TelegramNotifier posts messages through the Telegram bot API.
type TelegramNotifier struct {
	endpoint string
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegramNotifier creates a notifier for one bot and chat. The
// endpoint is the API base, e.g. "https://api.telegram.org".
func NewTelegramNotifier(endpoint, botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		endpoint: endpoint,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

var _ Notifier = (*TelegramNotifier)(nil)

// Send posts one message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.endpoint, t.botToken)
	payload := map[string]string{
		"chat_id": t.chatID,
		"text":    message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status: %d", resp.StatusCode)
	}
	return nil
}

// NopNotifier discards all messages. Used when notification is not
// configured.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

// Send discards the message.
func (NopNotifier) Send(ctx context.Context, message string) error {
	return nil
}
