package entity

// Reminder identifies which of the three fixed reminder messages to send.
type Reminder int

const (
	ReminderHour     Reminder = iota // 60 minutes before the event
	ReminderHalfHour                 // 30 minutes before the event
	ReminderDue                      // at the event time
)

func (r Reminder) String() string {
	switch r {
	case ReminderHour:
		return "1h"
	case ReminderHalfHour:
		return "30m"
	case ReminderDue:
		return "due"
	}
	return "unknown"
}
