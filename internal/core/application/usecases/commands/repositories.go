// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"missions/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// MissionRepoFactory provides access to the mission repository within
	// a transaction.
	MissionRepoFactory interface {
		MissionRepository() ports.MissionRepository
	}

	// MissionUoW manages transactions for mission operations.
	MissionUoW interface {
		TxManager
		MissionRepoFactory
	}

	// MissionUoWFactory creates new mission unit of work instances.
	MissionUoWFactory interface {
		Create() MissionUoW
	}
)

// MissionLocker serializes command handling per mission. All mutating
// handlers take the mission's critical section before reading the
// aggregate, so concurrent requests for the same mission are linearized.
type MissionLocker interface {
	Lock(key string) func()
}
