package contract

import (
	"context"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
)

// ReminderService is the command-side surface consumed by the webhook handler.
type ReminderService interface {
	CreateReminder(slackChannelID, text string) (*entity.Event, error)
	ListReminders(slackChannelID string) ([]*entity.Event, error)
}

// Notifier delivers a stage reminder for an event to its channel.
// A returned error means delivery did not happen; the caller owns retry policy.
type Notifier interface {
	Dispatch(ctx context.Context, event *entity.Event, reminder entity.Reminder) error
}
