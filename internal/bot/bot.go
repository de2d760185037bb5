// Package bot answers chat commands from the snapshot store over Telegram long polling.
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/daas/portwatch/internal/logger"
	"github.com/daas/portwatch/internal/metrics"
	"github.com/daas/portwatch/internal/store"
	"github.com/daas/portwatch/internal/telegram"
)

// PollTimeout is the long polling timeout passed to getUpdates, in seconds.
const PollTimeout = 30

// UpdateSource is the part of the Telegram client the bot needs
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int, timeoutSeconds int) ([]telegram.Update, error)
	SendMessageTo(ctx context.Context, chatID, text string) error
}

// Bot handles /start, /help, /ping, /status and /detalhes
type Bot struct {
	client      UpdateSource
	store       *store.Store
	statusLimit int
	retryPause  time.Duration
}

// New creates a bot reading from st. statusLimit caps the /status listing.
func New(client UpdateSource, st *store.Store, statusLimit int) *Bot {
	return &Bot{
		client:      client,
		store:       st,
		statusLimit: statusLimit,
		retryPause:  5 * time.Second,
	}
}

// HandleCommand returns the reply for a message text.
// The second result is false for non-command text and unknown commands, which get no reply.
func (b *Bot) HandleCommand(text string) (string, bool) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return "", false
	}

	command := strings.ToLower(parts[0])
	// Commands sent in groups carry the bot name: /status@PortWatchBot
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	args := parts[1:]

	var reply string
	switch command {
	case "/start", "/help":
		reply = telegram.FormatHelp()
	case "/ping":
		reply = telegram.PingReply
	case "/status":
		reply = telegram.FormatStatus(b.store.Status(b.statusLimit))
	case "/detalhes":
		reply = b.handleDetails(args)
	default:
		return "", false
	}

	metrics.CommandsTotal.WithLabelValues(strings.TrimPrefix(command, "/")).Inc()
	return reply, true
}

func (b *Bot) handleDetails(args []string) string {
	if len(args) == 0 {
		return telegram.UsageReply
	}

	m, ok := b.store.Lookup(strings.Join(args, " "))
	if !ok {
		return telegram.NotFoundReply
	}
	return telegram.FormatDetails(m)
}

// Run long-polls for updates and answers commands until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	logger.Info("bot started", nil)
	offset := 0

	for {
		if ctx.Err() != nil {
			logger.Info("bot stopped", nil)
			return
		}

		updates, err := b.client.GetUpdates(ctx, offset, PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Error("getting updates failed", nil, err)
			b.pause(ctx)
			continue
		}

		for _, update := range updates {
			b.processUpdate(ctx, update)

			// Update offset to mark this update as processed
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update telegram.Update) {
	if update.Message == nil {
		return
	}

	reply, ok := b.HandleCommand(update.Message.Text)
	if !ok {
		return
	}

	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	logger.Debug("command received", logger.Fields{
		"chat_id": chatID,
		"text":    update.Message.Text,
	})

	if err := b.client.SendMessageTo(ctx, chatID, reply); err != nil {
		logger.Error("sending reply failed", logger.Fields{"chat_id": chatID}, err)
	}
}

// pause waits before retrying after a failed getUpdates
func (b *Bot) pause(ctx context.Context) {
	timer := time.NewTimer(b.retryPause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
