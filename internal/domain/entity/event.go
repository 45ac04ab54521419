package entity

import "time"

// Stage tracks which reminder notifications have already been sent for an event.
// It only ever moves forward; once StageDueSent is reached the event is waiting
// for cleanup.
type Stage int

const (
	StageScheduled    Stage = iota // no reminder sent yet
	StageHourSent                  // 1-hour reminder delivered
	StageHalfHourSent              // 30-minute reminder delivered
	StageDueSent                   // "time's up" reminder delivered
)

func (s Stage) String() string {
	switch s {
	case StageScheduled:
		return "scheduled"
	case StageHourSent:
		return "hour_sent"
	case StageHalfHourSent:
		return "half_hour_sent"
	case StageDueSent:
		return "due_sent"
	}
	return "unknown"
}

// Valid reports whether s is one of the persistable stages.
func (s Stage) Valid() bool {
	return s >= StageScheduled && s <= StageDueSent
}

// Event is a single scheduled reminder for a Slack channel.
type Event struct {
	ID             int64
	SlackChannelID string
	EventAt        time.Time // absolute instant, always carries an offset
	Description    string
	Stage          Stage
	CreatedAt      time.Time
}
