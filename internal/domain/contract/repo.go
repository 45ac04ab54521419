package contract

import (
	"context"
	"errors"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
)

// ErrStageConflict is returned by UpdateStage when the event's stage no longer
// matches the expected one, meaning another writer got there first.
var ErrStageConflict = errors.New("event stage changed concurrently")

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Event() EventRepo
}

// EventRepo defines the contract for the reminder event repository.
// Every call is atomic. UpdateStage carries an optimistic guard on the
// current stage so concurrent writers can never move an event backwards.
type EventRepo interface {
	Create(event *entity.Event) error
	ListActive(below entity.Stage) ([]*entity.Event, error)
	ListByStage(stage entity.Stage) ([]*entity.Event, error)
	ListByChannel(slackChannelID string, below entity.Stage) ([]*entity.Event, error)
	UpdateStage(id int64, from, to entity.Stage) error
	Delete(id int64) error
}
