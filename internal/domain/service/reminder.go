package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/slack-reminder-bot/internal/slack"
)

type reminderService struct {
	dm      contract.DataManager
	loc     *time.Location
	log     zerolog.Logger
	nowFunc func() time.Time
}

func newReminder(dm contract.DataManager, loc *time.Location, log zerolog.Logger) *reminderService {
	return &reminderService{
		dm:      dm,
		loc:     loc,
		log:     log,
		nowFunc: time.Now,
	}
}

// CreateReminder parses a `/MM-DD HH:mm <description>` command and stores the
// resulting event for the channel. Parser rejections come back unwrapped so
// the handler can show the matching user-facing message.
func (s *reminderService) CreateReminder(slackChannelID, text string) (*entity.Event, error) {
	now := s.nowFunc().In(s.loc)

	parsed, err := slackcmd.ParseReminder(text, now)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		SlackChannelID: slackChannelID,
		EventAt:        parsed.EventAt,
		Description:    parsed.Description,
		Stage:          entity.StageScheduled,
	}

	if err := s.dm.Event().Create(event); err != nil {
		return nil, fmt.Errorf("failed to store reminder: %w", err)
	}

	s.log.Info().
		Int64("event_id", event.ID).
		Str("channel", slackChannelID).
		Time("event_at", event.EventAt).
		Msg("reminder created")

	return event, nil
}

// ListReminders returns the channel's pending events (nothing fully notified),
// ascending by event time.
func (s *reminderService) ListReminders(slackChannelID string) ([]*entity.Event, error) {
	events, err := s.dm.Event().ListByChannel(slackChannelID, entity.StageDueSent)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	return events, nil
}
