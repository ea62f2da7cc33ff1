// Package commands contains the use cases that modify classifications.
// Every command that adds weight is gated by the ledger: the handler locks the
// aggregate, asks the ledger for a decision and persists only accepted changes.
package commands

import (
	"context"
	"time"

	"packhouse/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ClassificationRepoFactory provides the repository bound to a transaction.
	ClassificationRepoFactory interface {
		ClassificationRepository() ports.ClassificationRepository
	}

	// ClassificationUoW manages transactions for classification commands.
	ClassificationUoW interface {
		TxManager
		ClassificationRepoFactory
	}

	// ClassificationUoWFactory creates a new unit of work per command.
	ClassificationUoWFactory interface {
		Create() ClassificationUoW
	}

	// DecisionRecorder receives ledger decisions for observability.
	DecisionRecorder interface {
		RecordDecision(operation, outcome, reason string)
		RecordFinalization(allowed bool)
		ObserveCommand(command string, start time.Time)
	}
)

type noopRecorder struct{}

func (noopRecorder) RecordDecision(string, string, string) {}
func (noopRecorder) RecordFinalization(bool)               {}
func (noopRecorder) ObserveCommand(string, time.Time)      {}
