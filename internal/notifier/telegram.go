package notifier

import (
	"context"
	"time"

	"github.com/daas/portwatch/internal/maneuver"
	"github.com/daas/portwatch/internal/telegram"
)

// MessageSender is the part of the Telegram client the notifier needs
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier posts alerts to the configured Telegram chat
type TelegramNotifier struct {
	client MessageSender
	delay  time.Duration
}

// NewTelegramNotifier creates a notifier that sends through client, pausing delay between messages
func NewTelegramNotifier(client MessageSender, delay time.Duration) *TelegramNotifier {
	return &TelegramNotifier{client: client, delay: delay}
}

// Name implements Notifier
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify posts one Markdown alert per maneuver
func (n *TelegramNotifier) Notify(ctx context.Context, maneuvers []maneuver.Maneuver) error {
	return deliver(ctx, n.Name(), maneuvers, n.delay, func(ctx context.Context, m maneuver.Maneuver) error {
		return n.client.SendMessage(ctx, telegram.FormatAlert(m))
	})
}
