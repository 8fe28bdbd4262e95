package services

import (
	"context"
	"time"

	"github.com/rribeiro1/spendless/internal/core"
)

// Ports for outbound adapters. The SQLite repository implements all of
// them; the in-memory store implements the subsets tests need.
type (
	TransactionStore interface {
		// GetAll returns a snapshot of every stored transaction.
		GetAll(ctx context.Context) ([]core.Transaction, error)

		// Save persists a transaction and returns it with its
		// storage-assigned ID.
		Save(ctx context.Context, tx core.Transaction) (core.Transaction, error)

		// DeleteAll wipes the transaction table.
		DeleteAll(ctx context.Context) error

		// HasOccurrence reports whether a materialized occurrence of
		// the given template already exists on the given calendar day.
		HasOccurrence(ctx context.Context, template core.Transaction, day time.Time) (bool, error)
	}

	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		UserByUsername(ctx context.Context, username string) (core.User, error)
	}

	// PreferencesSource exposes per-user preference snapshots. Stored
	// enum names that fail to parse fall back to defaults silently.
	PreferencesSource interface {
		FormattingPreferences(ctx context.Context, userID int64) (core.FormattingPreferences, error)
		SessionPreferences(ctx context.Context, userID int64) (core.SessionPreferences, error)
	}
)
