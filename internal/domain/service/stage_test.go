package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
)

func Test_decide(t *testing.T) {
	tests := []struct {
		name    string
		stage   entity.Stage
		minutes float64
		want    Action
	}{
		// scheduled: the 1-hour window
		{
			name: "scheduled at exactly 60 minutes fires hour reminder",
			stage: entity.StageScheduled, minutes: 60,
			want: Action{Kind: ActionFire, Next: entity.StageHourSent, Reminder: entity.ReminderHour},
		},
		{
			name: "scheduled at lower window edge fires",
			stage: entity.StageScheduled, minutes: 58,
			want: Action{Kind: ActionFire, Next: entity.StageHourSent, Reminder: entity.ReminderHour},
		},
		{
			name: "scheduled at upper window edge fires",
			stage: entity.StageScheduled, minutes: 62,
			want: Action{Kind: ActionFire, Next: entity.StageHourSent, Reminder: entity.ReminderHour},
		},
		{
			name: "scheduled well before the window does nothing",
			stage: entity.StageScheduled, minutes: 180,
			want: Action{Kind: ActionNone},
		},
		// scheduled: skip-ahead, no send for the missed window
		{
			name: "scheduled created 45 minutes out skips to hour-sent",
			stage: entity.StageScheduled, minutes: 45,
			want: Action{Kind: ActionSkip, Next: entity.StageHourSent},
		},
		{
			name: "scheduled created 10 minutes out skips to half-hour-sent",
			stage: entity.StageScheduled, minutes: 10,
			want: Action{Kind: ActionSkip, Next: entity.StageHalfHourSent},
		},
		{
			name: "scheduled just inside final tolerance skips to half-hour-sent",
			stage: entity.StageScheduled, minutes: -2,
			want: Action{Kind: ActionSkip, Next: entity.StageHalfHourSent},
		},
		{
			name: "scheduled long past the event does nothing",
			stage: entity.StageScheduled, minutes: -5,
			want: Action{Kind: ActionNone},
		},
		// hour-sent: the 30-minute window
		{
			name: "hour-sent at 30 minutes fires half-hour reminder",
			stage: entity.StageHourSent, minutes: 30,
			want: Action{Kind: ActionFire, Next: entity.StageHalfHourSent, Reminder: entity.ReminderHalfHour},
		},
		{
			name: "hour-sent at window edges fires",
			stage: entity.StageHourSent, minutes: 28,
			want: Action{Kind: ActionFire, Next: entity.StageHalfHourSent, Reminder: entity.ReminderHalfHour},
		},
		{
			name: "hour-sent past the window skips to half-hour-sent",
			stage: entity.StageHourSent, minutes: 10,
			want: Action{Kind: ActionSkip, Next: entity.StageHalfHourSent},
		},
		{
			name: "hour-sent between windows does nothing",
			stage: entity.StageHourSent, minutes: 45,
			want: Action{Kind: ActionNone},
		},
		// half-hour-sent: the due window
		{
			name: "half-hour-sent at zero fires due reminder",
			stage: entity.StageHalfHourSent, minutes: 0,
			want: Action{Kind: ActionFire, Next: entity.StageDueSent, Reminder: entity.ReminderDue},
		},
		{
			name: "half-hour-sent two minutes late still fires",
			stage: entity.StageHalfHourSent, minutes: -2,
			want: Action{Kind: ActionFire, Next: entity.StageDueSent, Reminder: entity.ReminderDue},
		},
		{
			name: "half-hour-sent ahead of window does nothing",
			stage: entity.StageHalfHourSent, minutes: 5,
			want: Action{Kind: ActionNone},
		},
		// due-sent: cleanup
		{
			name: "due-sent fifteen minutes past is deleted",
			stage: entity.StageDueSent, minutes: -15,
			want: Action{Kind: ActionDelete},
		},
		{
			name: "due-sent five minutes past is kept",
			stage: entity.StageDueSent, minutes: -5,
			want: Action{Kind: ActionNone},
		},
		{
			name: "due-sent exactly at cleanup threshold is kept",
			stage: entity.StageDueSent, minutes: -10,
			want: Action{Kind: ActionNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.stage, tt.minutes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_decide_StagesNeverRegress(t *testing.T) {
	for stage := entity.StageScheduled; stage <= entity.StageDueSent; stage++ {
		for minutes := -120.0; minutes <= 120.0; minutes += 0.5 {
			action := decide(stage, minutes)
			if action.Kind == ActionFire || action.Kind == ActionSkip {
				assert.Greater(t, action.Next, stage,
					"stage %s at %.1f minutes must only move forward", stage, minutes)
			}
		}
	}
}

func Test_decide_FiresAtMostOneTransition(t *testing.T) {
	// A fired or skipped transition advances exactly one decision; re-running
	// the engine from the new stage at the same instant must not fire again
	// for the same window.
	action := decide(entity.StageScheduled, 60)
	assert.Equal(t, ActionFire, action.Kind)

	next := decide(action.Next, 60)
	assert.Equal(t, ActionNone, next.Kind)
}
