package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/slack-reminder-bot/internal/slack"
)

// listCharLimit keeps the /list reply under the platform message length cap.
const listCharLimit = 1900

type SlackHandler struct {
	reminderService contract.ReminderService
	signingSecret   string
	log             zerolog.Logger
}

func New(reminderService contract.ReminderService, signingSecret string, log zerolog.Logger) *SlackHandler {
	return &SlackHandler{
		reminderService: reminderService,
		signingSecret:   signingSecret,
		log:             log,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	// Verify request from Slack
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	// Verify Slack signature
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cmd := slackcmd.ParseCommand(s.Text)

	var response *slack.Msg
	switch cmd.Type {
	case slackcmd.CmdList:
		response = h.handleList(&s)
	case slackcmd.CmdHelp:
		response = h.handleHelp()
	default:
		response = h.handleCreate(&s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SlackHandler) handleCreate(slashCmd *slack.SlashCommand) *slack.Msg {
	// Slack strips the slash and command name; rebuild the raw shape the
	// parser expects
	raw := "/" + strings.TrimSpace(slashCmd.Text)

	event, err := h.reminderService.CreateReminder(slashCmd.ChannelID, raw)
	if err != nil {
		switch {
		case errors.Is(err, slackcmd.ErrInvalidFormat), errors.Is(err, slackcmd.ErrInvalidDate):
			return h.createErrorResponse("Invalid command or date.\n\nFormat: `/remind MM-DD HH:mm <description>`\nExample: `/remind 01-28 14:30 weekly sync`")
		case errors.Is(err, slackcmd.ErrPastDate):
			return h.createErrorResponse("That time has already passed. Reminders must be in the future.")
		default:
			h.log.Error().Err(err).Str("channel", slashCmd.ChannelID).Msg("failed to create reminder")
			return h.createErrorResponse("Something went wrong, please try again later.")
		}
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeInChannel,
		Text: fmt.Sprintf("✅ Reminder set!\n\n🗓 When: %s\n📌 What: %s",
			slackcmd.FormatEventTime(event.EventAt), event.Description),
	}
}

func (h *SlackHandler) handleList(slashCmd *slack.SlashCommand) *slack.Msg {
	events, err := h.reminderService.ListReminders(slashCmd.ChannelID)
	if err != nil {
		h.log.Error().Err(err).Str("channel", slashCmd.ChannelID).Msg("failed to list reminders")
		return h.createErrorResponse("Something went wrong, please try again later.")
	}

	if len(events) == 0 {
		return &slack.Msg{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         "No pending reminders in this channel. Use `/remind MM-DD HH:mm <description>` to add one.",
		}
	}

	var list strings.Builder
	list.WriteString(fmt.Sprintf("*%d pending reminder(s):*\n\n", len(events)))
	for i, event := range events {
		list.WriteString(fmt.Sprintf("%s %d. %s\n    %s\n",
			stageEmoji(event.Stage), i+1,
			slackcmd.FormatEventTime(event.EventAt), event.Description))
	}

	text := list.String()
	if len(text) > listCharLimit {
		cut := text[:listCharLimit]
		for !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		text = cut + "\n\n... (list truncated)"
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         slackcmd.GetHelpText(),
	}
}

func stageEmoji(stage entity.Stage) string {
	switch stage {
	case entity.StageScheduled:
		return "⏳"
	case entity.StageHourSent:
		return "🔔"
	default:
		return "⏰"
	}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	}
}
