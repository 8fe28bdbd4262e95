package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rribeiro1/spendless/internal/core"
)

// Expander materializes missed occurrences of recurring transactions.
// It is the one stateful sweep in the core: it reads the full snapshot,
// computes new records and appends them through the store. The store is
// responsible for serializing concurrent writers; the sweep assumes a
// single writer per backend.
type Expander struct {
	store TransactionStore
}

func NewExpander(store TransactionStore) *Expander {
	return &Expander{store: store}
}

// Expand walks every recurring template from its anchor date and saves
// one concrete transaction per occurrence up to and including today.
// Occurrences already present in the store are skipped, so running the
// sweep twice with the same inputs is a no-op.
//
// A failed save is logged and the sweep moves on; the partially
// materialized state is resumable because the next run skips whatever
// did get saved. Cancellation is honored between iterations.
func (e *Expander) Expand(ctx context.Context, today time.Time) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("expander not properly initialized")
	}

	all, err := e.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load transactions: %w", err)
	}

	templates := 0
	created := 0
	for _, tx := range all {
		if tx.Recurrence == core.RecurrenceNone {
			continue
		}
		templates++

		n, err := e.expandTemplate(ctx, tx, today)
		created += n
		if err != nil {
			if ctx.Err() != nil {
				return created, ctx.Err()
			}
			slog.ErrorContext(ctx, "Failed to expand recurring transaction",
				"id", tx.ID,
				"description", tx.Description,
				"error", err)
		}
	}

	slog.InfoContext(ctx, "Recurring expansion sweep complete",
		"templates", templates,
		"created", created,
		"sweep_date", today.Format("2006-01-02"))

	return created, nil
}

func (e *Expander) expandTemplate(ctx context.Context, template core.Transaction, today time.Time) (int, error) {
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, 1)

	created := 0
	occurrence := template.CreatedAt
	for {
		select {
		case <-ctx.Done():
			return created, ctx.Err()
		default:
		}

		next, ok := core.NextOccurrence(occurrence, template.Recurrence)
		if !ok || !next.Before(endOfToday) {
			return created, nil
		}
		occurrence = next

		exists, err := e.store.HasOccurrence(ctx, template, occurrence)
		if err != nil {
			return created, fmt.Errorf("check occurrence on %s: %w", occurrence.Format("2006-01-02"), err)
		}
		if exists {
			continue
		}

		saved, err := e.store.Save(ctx, template.WithOccurrence(occurrence))
		if err != nil {
			// Log and keep walking; the missed day is retried on the
			// next sweep.
			slog.ErrorContext(ctx, "Failed to save materialized occurrence",
				"template_id", template.ID,
				"occurrence", occurrence.Format("2006-01-02"),
				"error", err)
			continue
		}

		created++
		slog.DebugContext(ctx, "Materialized recurring transaction",
			"template_id", template.ID,
			"id", saved.ID,
			"occurrence", occurrence.Format("2006-01-02"))
	}
}
