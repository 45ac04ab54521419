package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/slack-reminder-bot/internal/slack"
)

func newTestReminder(m allMocks, now time.Time) *reminderService {
	s := newReminder(m.mockDataManager, taipei, zerolog.Nop())
	s.nowFunc = func() time.Time { return now }
	return s
}

func Test_reminderService_CreateReminder(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, taipei)
	s := newTestReminder(m, now)

	m.mockEventRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(event *entity.Event) error {
			event.ID = 42
			return nil
		})

	event, err := s.CreateReminder("C123456789", "/01-28 14:30 weekly sync")
	require.NoError(t, err)

	assert.Equal(t, int64(42), event.ID)
	assert.Equal(t, "C123456789", event.SlackChannelID)
	assert.Equal(t, "weekly sync", event.Description)
	assert.Equal(t, entity.StageScheduled, event.Stage)
	assert.True(t, event.EventAt.Equal(time.Date(2025, 1, 28, 14, 30, 0, 0, taipei)))
}

func Test_reminderService_CreateReminder_RejectionsPassThrough(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, taipei)
	s := newTestReminder(m, now)

	_, err := s.CreateReminder("C123456789", "garbage")
	assert.ErrorIs(t, err, slackcmd.ErrInvalidFormat)

	_, err = s.CreateReminder("C123456789", "/02-30 12:00 impossible date")
	assert.ErrorIs(t, err, slackcmd.ErrInvalidDate)

	_, err = s.CreateReminder("C123456789", "/01-01 00:00 already started")
	assert.ErrorIs(t, err, slackcmd.ErrPastDate)
}

func Test_reminderService_CreateReminder_StoreFailure(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, taipei)
	s := newTestReminder(m, now)

	m.mockEventRepo.EXPECT().Create(gomock.Any()).Return(errors.New("disk full"))

	_, err := s.CreateReminder("C123456789", "/01-28 14:30 weekly sync")
	assert.ErrorContains(t, err, "failed to store reminder")
}

func Test_reminderService_ListReminders(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, taipei)
	s := newTestReminder(m, now)

	expected := []*entity.Event{
		testEvent(1, entity.StageScheduled, now.Add(2*time.Hour)),
		testEvent(2, entity.StageHourSent, now.Add(3*time.Hour)),
	}

	m.mockEventRepo.EXPECT().
		ListByChannel("C123456789", entity.StageDueSent).
		Return(expected, nil)

	events, err := s.ListReminders("C123456789")
	require.NoError(t, err)
	assert.Equal(t, expected, events)
}
