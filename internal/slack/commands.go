package slack

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type CommandType string

const (
	CmdRemind CommandType = "remind"
	CmdList   CommandType = "list"
	CmdHelp   CommandType = "help"
)

type Command struct {
	Type CommandType
	Raw  string
}

// Parser rejection reasons, surfaced to the user by the handler.
var (
	ErrInvalidFormat = errors.New("command does not match /MM-DD HH:mm <description>")
	ErrInvalidDate   = errors.New("not a valid calendar date or time")
	ErrPastDate      = errors.New("reminder time is not in the future")
)

// ParsedReminder is a validated reminder command: an absolute future instant
// plus a trimmed non-empty description.
type ParsedReminder struct {
	EventAt     time.Time
	Description string
}

var reminderPattern = regexp.MustCompile(`^/(\d{2})-(\d{2})\s+(\d{2}):(\d{2})\s+(\S.*)$`)

// ParseCommand classifies the slash command text. Anything that is not a
// known subcommand is treated as a reminder definition and validated later
// by ParseReminder.
func ParseCommand(text string) *Command {
	trimmed := strings.TrimSpace(text)

	switch strings.ToLower(trimmed) {
	case "list", "ls":
		return &Command{Type: CmdList, Raw: text}
	case "help", "":
		return &Command{Type: CmdHelp, Raw: text}
	}

	return &Command{Type: CmdRemind, Raw: text}
}

// ParseReminder parses a `/MM-DD HH:mm <description>` command into a reminder
// scheduled in now's location. The command carries no year: the current one is
// assumed, unless the month is behind now's month, which rolls over to next
// year. The result must be strictly after now.
//
// It is a pure function of (text, now); the time zone comes from now itself.
func ParseReminder(text string, now time.Time) (*ParsedReminder, error) {
	match := reminderPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return nil, ErrInvalidFormat
	}

	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	hour, _ := strconv.Atoi(match[3])
	minute, _ := strconv.Atoi(match[4])
	description := strings.TrimSpace(match[5])

	if month < 1 || month > 12 || hour > 23 || minute > 59 {
		return nil, ErrInvalidDate
	}

	year := now.Year()
	if time.Month(month) < now.Month() {
		year++
	}

	eventAt := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())
	// time.Date normalizes overflowing days (02-30 becomes 03-02); reject
	// anything that did not survive round-trip intact.
	if int(eventAt.Month()) != month || eventAt.Day() != day {
		return nil, ErrInvalidDate
	}

	if !eventAt.After(now) {
		return nil, ErrPastDate
	}

	return &ParsedReminder{
		EventAt:     eventAt,
		Description: description,
	}, nil
}

// FormatEventTime renders an event instant the way replies and reminders show it.
func FormatEventTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func GetHelpText() string {
	return fmt.Sprintf(`*Available commands:*

• %s - Schedule a reminder (month-day 24h-time, current or next year)
• %s - List pending reminders in this channel
• %s - Show this help

*Example:*
%s

You will be reminded 1 hour before, 30 minutes before, and at the moment.`,
		"`/remind MM-DD HH:mm <description>`",
		"`/remind list`",
		"`/remind help`",
		"`/remind 01-28 14:30 weekly sync`")
}
