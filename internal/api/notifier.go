package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shipseg/internal/domain/entity"
	"shipseg/internal/domain/port"
)

// maxListedFailures bounds the failures quoted in one message.
const maxListedFailures = 10

// Notifier sends batch reports to a Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier authorizes the bot token and targets chatID.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID}, nil
}

// Notify sends the summary of report. Nothing is sent once ctx is done.
func (n *Notifier) Notify(ctx context.Context, report entity.BatchReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, FormatSummary(report))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// FormatSummary renders report as a chat message.
func FormatSummary(report entity.BatchReport) string {
	var b strings.Builder
	if report.Failed == 0 {
		b.WriteString("✅ Mask generation finished\n")
	} else {
		b.WriteString("⚠️ Mask generation finished with errors\n")
	}
	fmt.Fprintf(&b, "Images: %d\nCreated: %d\nSkipped (missing files): %d\nFailed: %d\n",
		report.Total, report.Created, report.Skipped, report.Failed)

	for i, f := range report.Failures {
		if i == maxListedFailures {
			fmt.Fprintf(&b, "… and %d more\n", len(report.Failures)-maxListedFailures)
			break
		}
		fmt.Fprintf(&b, "• %s: %v\n", f.Name, f.Err)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

var _ port.Notifier = (*Notifier)(nil)
