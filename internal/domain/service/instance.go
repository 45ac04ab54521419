package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
)

type Instance struct {
	Reminder  *reminderService
	Scheduler *scheduler
}

func NewInstance(dm contract.DataManager, slackClient contract.SlackClient, loc *time.Location, pollInterval time.Duration, log zerolog.Logger) *Instance {
	notifier := newNotifier(slackClient)

	return &Instance{
		Reminder:  newReminder(dm, loc, log),
		Scheduler: newScheduler(dm, notifier, loc, pollInterval, log),
	}
}
