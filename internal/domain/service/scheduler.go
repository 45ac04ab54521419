package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
	"github.com/diegoclair/slack-reminder-bot/internal/domain/entity"
)

// scheduler owns the periodic scan over stored events. One tick runs to
// completion before the next can start: the loop is a single goroutine, so
// two ticks can never race on the same event's stage.
type scheduler struct {
	dm       contract.DataManager
	notifier contract.Notifier
	loc      *time.Location
	interval time.Duration
	log      zerolog.Logger
	nowFunc  func() time.Time
	stopChan chan struct{}
	running  bool
}

func newScheduler(dm contract.DataManager, notifier contract.Notifier, loc *time.Location, interval time.Duration, log zerolog.Logger) *scheduler {
	return &scheduler{
		dm:       dm,
		notifier: notifier,
		loc:      loc,
		interval: interval,
		log:      log,
		nowFunc:  time.Now,
		stopChan: make(chan struct{}),
		running:  false,
	}
}

// Start launches the polling loop. The lifecycle is one-shot: once Stop has
// closed stopChan a restarted loop exits immediately, and Start/Stop are meant
// to be called from a single goroutine (main does both).
func (s *scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.log.Info().Dur("interval", s.interval).Msg("scheduler starting")
	go s.mainLoop()
}

func (s *scheduler) Stop() {
	if !s.running {
		return
	}
	s.log.Info().Msg("scheduler stopping")
	close(s.stopChan)
	s.running = false
}

func (s *scheduler) mainLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runTick(s.nowFunc().In(s.loc))
		case <-s.stopChan:
			return
		}
	}
}

// runTick scans every event that can still change state: everything below
// the final stage, plus fully-notified events waiting for cleanup. A failure
// on one event never aborts the rest of the scan.
func (s *scheduler) runTick(now time.Time) {
	open, err := s.dm.Event().ListActive(entity.StageDueSent)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load open events")
		return
	}

	done, err := s.dm.Event().ListByStage(entity.StageDueSent)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load fully-notified events")
		return
	}

	events := append(open, done...)
	if len(events) == 0 {
		return
	}
	s.log.Debug().Int("events", len(events)).Time("now", now).Msg("scanning events")

	for _, event := range events {
		if err := s.processEvent(now, event); err != nil {
			s.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to process event")
		}
	}
}

// processEvent runs the stage engine for one event and applies its verdict.
// A Fire only persists the stage advance after the reminder was delivered, so
// a failed send is retried on the next tick while the window still holds.
func (s *scheduler) processEvent(now time.Time, event *entity.Event) error {
	minutes := event.EventAt.In(s.loc).Sub(now).Minutes()
	action := decide(event.Stage, minutes)

	switch action.Kind {
	case ActionNone:
		return nil

	case ActionFire:
		if err := s.notifier.Dispatch(context.Background(), event, action.Reminder); err != nil {
			s.log.Warn().Err(err).
				Int64("event_id", event.ID).
				Str("reminder", action.Reminder.String()).
				Msg("dispatch failed, will retry next tick")
			return nil
		}
		if err := s.applyStage(event, action.Next); err != nil {
			return err
		}
		s.log.Info().
			Int64("event_id", event.ID).
			Str("reminder", action.Reminder.String()).
			Str("stage", action.Next.String()).
			Msg("reminder sent")
		return nil

	case ActionSkip:
		if err := s.applyStage(event, action.Next); err != nil {
			return err
		}
		s.log.Info().
			Int64("event_id", event.ID).
			Float64("minutes_left", minutes).
			Str("stage", action.Next.String()).
			Msg("skipped unreachable reminder window")
		return nil

	case ActionDelete:
		if err := s.applyDelete(event); err != nil {
			return err
		}
		s.log.Info().Int64("event_id", event.ID).Msg("cleaned up completed event")
		return nil
	}

	return nil
}

// applyStage persists a stage advance transactionally, guarded by the stage
// the engine decided on, so a concurrent writer surfaces as ErrStageConflict
// instead of a lost or duplicated transition.
func (s *scheduler) applyStage(event *entity.Event, next entity.Stage) error {
	err := s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		return dm.Event().UpdateStage(event.ID, event.Stage, next)
	})
	if err != nil {
		return fmt.Errorf("failed to advance event %d to %s: %w", event.ID, next, err)
	}

	event.Stage = next
	return nil
}

func (s *scheduler) applyDelete(event *entity.Event) error {
	err := s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
		return dm.Event().Delete(event.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", event.ID, err)
	}

	return nil
}
