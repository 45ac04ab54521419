package service

import (
	"context"
	"fmt"
	"time"

	goslack "github.com/slack-go/slack"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/slack-reminder-bot/internal/slack"
)

// dispatchTimeout bounds a single outbound Slack call so a hung request
// cannot stall the whole scan.
const dispatchTimeout = 10 * time.Second

type notifier struct {
	slackClient contract.SlackClient
}

func newNotifier(slackClient contract.SlackClient) *notifier {
	return &notifier{slackClient: slackClient}
}

// Dispatch formats the reminder message for the given stage and posts it to
// the event's channel. Errors are reported, never swallowed and never fatal;
// the scheduler decides whether to retry.
func (n *notifier) Dispatch(ctx context.Context, event *entity.Event, reminder entity.Reminder) error {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	_, _, err := n.slackClient.PostMessageContext(
		ctx,
		event.SlackChannelID,
		goslack.MsgOptionText(reminderMessage(event, reminder), false),
		goslack.MsgOptionAsUser(false),
	)
	if err != nil {
		return fmt.Errorf("failed to send %s reminder: %w", reminder, err)
	}

	return nil
}

func reminderMessage(event *entity.Event, reminder entity.Reminder) string {
	var header string
	switch reminder {
	case entity.ReminderHour:
		header = "⏰ *Reminder: 1 hour to go*"
	case entity.ReminderHalfHour:
		header = "⏰ *Reminder: 30 minutes to go*"
	case entity.ReminderDue:
		header = "🔔 *Time's up!*"
	}

	return fmt.Sprintf("%s\n\n🗓 When: %s\n📌 What: %s",
		header, slackcmd.FormatEventTime(event.EventAt), event.Description)
}
