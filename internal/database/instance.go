package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/slack-reminder-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db        *DB
	eventRepo contract.EventRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	return &instance{
		db:        db,
		eventRepo: newEventRepository(db.conn),
	}
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		eventRepo: newEventRepository(db),
	}
}

// Event returns the event repository
func (i *instance) Event() contract.EventRepo {
	return i.eventRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
