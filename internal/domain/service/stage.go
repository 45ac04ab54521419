package service

import "github.com/diegoclair/slack-reminder-bot/internal/domain/entity"

// ActionKind is what a tick should do with one event.
type ActionKind int

const (
	ActionNone   ActionKind = iota
	ActionFire              // send the stage's reminder, then advance
	ActionSkip              // advance without sending; the window was never reachable
	ActionDelete            // event is stale and fully notified
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionFire:
		return "fire"
	case ActionSkip:
		return "skip"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Action is the stage engine's verdict for a single event on a single tick.
type Action struct {
	Kind     ActionKind
	Next     entity.Stage    // target stage for Fire and Skip
	Reminder entity.Reminder // which message to send, Fire only
}

// Reminder windows in minutes until the event. Each window is wider than the
// poll interval so a transition cannot fall between two ticks, and the fire
// windows are checked before the skip fallbacks so an on-time event always
// gets its message.
const (
	hourWindowLow      = 58
	hourWindowHigh     = 62
	halfHourWindowLow  = 28
	halfHourWindowHigh = 32
	dueWindowLow       = -2
	dueWindowHigh      = 2
	cleanupAfter       = -10
)

// decide maps (stage, minutes until event) to the single action this tick may
// take. At most one transition per event per tick; stages only move forward.
func decide(stage entity.Stage, minutes float64) Action {
	switch stage {
	case entity.StageScheduled:
		switch {
		case minutes >= hourWindowLow && minutes <= hourWindowHigh:
			return Action{Kind: ActionFire, Next: entity.StageHourSent, Reminder: entity.ReminderHour}
		case minutes >= halfHourWindowLow && minutes <= hourWindowHigh:
			// created with less than an hour to go: the 1-hour window was
			// never reachable, advance silently
			return Action{Kind: ActionSkip, Next: entity.StageHourSent}
		case minutes >= dueWindowLow && minutes < halfHourWindowLow:
			return Action{Kind: ActionSkip, Next: entity.StageHalfHourSent}
		}

	case entity.StageHourSent:
		switch {
		case minutes >= halfHourWindowLow && minutes <= halfHourWindowHigh:
			return Action{Kind: ActionFire, Next: entity.StageHalfHourSent, Reminder: entity.ReminderHalfHour}
		case minutes >= dueWindowLow && minutes < halfHourWindowLow:
			return Action{Kind: ActionSkip, Next: entity.StageHalfHourSent}
		}

	case entity.StageHalfHourSent:
		if minutes >= dueWindowLow && minutes <= dueWindowHigh {
			return Action{Kind: ActionFire, Next: entity.StageDueSent, Reminder: entity.ReminderDue}
		}

	case entity.StageDueSent:
		if minutes < cleanupAfter {
			return Action{Kind: ActionDelete}
		}
	}

	return Action{Kind: ActionNone}
}
