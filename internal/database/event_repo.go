package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
)

type eventRepository struct {
	db dbConn
}

func newEventRepository(db dbConn) contract.EventRepo {
	return &eventRepository{db: db}
}

const eventColumns = `id, slack_channel_id, event_at, description, remind_level, created_at`

func (r *eventRepository) Create(event *entity.Event) error {
	query := `
		INSERT INTO events (slack_channel_id, event_at, description, remind_level)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		event.SlackChannelID,
		event.EventAt.Format(time.RFC3339),
		event.Description,
		int(event.Stage),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	event.ID = id
	return nil
}

func (r *eventRepository) ListActive(below entity.Stage) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE remind_level < ?
		ORDER BY event_at
	`

	rows, err := r.db.Query(query, int(below))
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) ListByStage(stage entity.Stage) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE remind_level = ?
		ORDER BY event_at
	`

	rows, err := r.db.Query(query, int(stage))
	if err != nil {
		return nil, fmt.Errorf("failed to list events by stage: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) ListByChannel(slackChannelID string, below entity.Stage) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slack_channel_id = ? AND remind_level < ?
		ORDER BY event_at
	`

	rows, err := r.db.Query(query, slackChannelID, int(below))
	if err != nil {
		return nil, fmt.Errorf("failed to list events for channel: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *eventRepository) UpdateStage(id int64, from, to entity.Stage) error {
	query := `
		UPDATE events SET remind_level = ?
		WHERE id = ? AND remind_level = ?
	`

	result, err := r.db.Exec(query, int(to), id, int(from))
	if err != nil {
		return fmt.Errorf("failed to update event stage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return contract.ErrStageConflict
	}

	return nil
}

func (r *eventRepository) Delete(id int64) error {
	query := `DELETE FROM events WHERE id = ?`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// scanEvents reads all rows into events. A row whose stored timestamp no
// longer parses is logged and skipped so one corrupt record cannot take the
// whole scan down with it.
func scanEvents(rows *sql.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		event := &entity.Event{}
		var eventAt string
		var stage int
		err := rows.Scan(
			&event.ID,
			&event.SlackChannelID,
			&eventAt,
			&event.Description,
			&stage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.EventAt, err = time.Parse(time.RFC3339, eventAt)
		if err != nil {
			log.Warn().Int64("event_id", event.ID).Str("event_at", eventAt).
				Msg("skipping event with unparseable timestamp")
			continue
		}

		event.Stage = entity.Stage(stage)
		if !event.Stage.Valid() {
			log.Warn().Int64("event_id", event.ID).Int("remind_level", stage).
				Msg("skipping event with out-of-range stage")
			continue
		}

		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
