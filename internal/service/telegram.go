package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const telegramAPIBase = "https://api.telegram.org"

// Notifier delivers out-of-band messages to the budget's members.
// Notifications are fire-and-forget: a delivery failure never fails the
// operation that triggered it.
type Notifier interface {
	NotifyTransaction(icon, categoryName string, amount int64, userName, comment string)
	Broadcast(ctx context.Context, text string) error
}

// TelegramNotifier implements Notifier over the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatIDs  []int64
	client   *http.Client
}

// NewTelegramNotifier creates a new TelegramNotifier. With an empty token or
// chat list every delivery is a no-op.
func NewTelegramNotifier(botToken string, chatIDs []int64) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatIDs:  chatIDs,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the notifier has a token and recipients.
func (n *TelegramNotifier) Enabled() bool {
	return n.botToken != "" && len(n.chatIDs) > 0
}

// NotifyTransaction announces a freshly logged transaction to every chat.
func (n *TelegramNotifier) NotifyTransaction(icon, categoryName string, amount int64, userName, comment string) {
	if !n.Enabled() {
		return
	}

	text := fmt.Sprintf("%s <b>%s</b>: %d тг\n%s", icon, categoryName, amount, userName)
	if comment != "" {
		text += fmt.Sprintf("\n<i>%s</i>", comment)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.Broadcast(ctx, text); err != nil {
			log.Warn().Err(err).Msg("Failed to send transaction notification")
		}
	}()
}

// Broadcast sends text to every configured chat. Per-chat failures are
// logged and do not stop the remaining deliveries.
func (n *TelegramNotifier) Broadcast(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	var lastErr error
	for _, chatID := range n.chatIDs {
		if err := n.sendMessage(ctx, chatID, text); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver Telegram message")
			lastErr = err
		}
	}
	return lastErr
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: unexpected status %d", resp.StatusCode)
	}
	return nil
}
