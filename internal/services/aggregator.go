// Package services holds the business logic built on the core domain:
// transaction aggregation, recurring-transaction expansion and the
// registration/session service.
package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rribeiro1/spendless/internal/core"
	"github.com/rribeiro1/spendless/internal/format"
)

// Group is one calendar-day bucket of the transaction list view.
// Ephemeral: rebuilt on every aggregation pass, never persisted.
type Group struct {
	DateHeader   string
	Transactions []core.Transaction
}

// GroupByDay sorts transactions descending by CreatedAt and buckets
// them per calendar day. The two most recent days relative to now are
// labelled "Today" and "Yesterday"; older buckets get "d MMMM yyyy".
// The sort is stable so equal timestamps keep their input order.
func GroupByDay(transactions []core.Transaction, now time.Time) []Group {
	sorted := make([]core.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	var groups []Group
	for _, tx := range sorted {
		day := startOfDay(tx.CreatedAt)
		header := dayHeader(day, today, yesterday)
		if n := len(groups); n > 0 && groups[n-1].DateHeader == header {
			groups[n-1].Transactions = append(groups[n-1].Transactions, tx)
			continue
		}
		groups = append(groups, Group{DateHeader: header, Transactions: []core.Transaction{tx}})
	}
	return groups
}

func dayHeader(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(yesterday):
		return "Yesterday"
	default:
		return format.DayHeader(day)
	}
}

// Balance sums Income magnitudes and subtracts Expense magnitudes.
// Type is authoritative; the stored sign of Amount is ignored, so the
// result is correct under either storage sign convention.
func Balance(transactions []core.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == core.Income {
			total = total.Add(tx.Magnitude())
		} else {
			total = total.Sub(tx.Magnitude())
		}
	}
	return total
}

// TotalForPreviousWeek sums Expense magnitudes inside the previous full
// calendar week: Monday 00:00:00 up to the following Monday 00:00:00,
// exclusive, relative to the reference date. The window rolls over as
// calendar weeks do; it is never a fixed historical week.
func TotalForPreviousWeek(transactions []core.Transaction, reference time.Time) decimal.Decimal {
	weekStart := startOfWeek(reference).AddDate(0, 0, -7)
	weekEnd := weekStart.AddDate(0, 0, 7)

	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != core.Expense {
			continue
		}
		if tx.CreatedAt.Before(weekStart) || !tx.CreatedAt.Before(weekEnd) {
			continue
		}
		total = total.Add(tx.Magnitude())
	}
	return total
}

// LargestTransaction returns the transaction of any type with the
// maximum absolute amount, ties broken by the most recent CreatedAt.
// Returns nil for an empty collection.
func LargestTransaction(transactions []core.Transaction) *core.Transaction {
	var largest *core.Transaction
	for i := range transactions {
		tx := &transactions[i]
		if largest == nil {
			largest = tx
			continue
		}
		switch tx.Magnitude().Cmp(largest.Magnitude()) {
		case 1:
			largest = tx
		case 0:
			if tx.CreatedAt.After(largest.CreatedAt) {
				largest = tx
			}
		}
	}
	if largest == nil {
		return nil
	}
	out := *largest
	return &out
}

// MostFrequentCategory returns the category with the highest transaction
// count, ties broken by category declaration order. The second return
// value is false for an empty collection.
func MostFrequentCategory(transactions []core.Transaction) (core.Category, bool) {
	if len(transactions) == 0 {
		return "", false
	}
	counts := make(map[core.Category]int)
	for _, tx := range transactions {
		counts[tx.Category]++
	}
	best := core.Category("")
	bestCount := -1
	for _, cat := range core.Categories {
		if c := counts[cat]; c > bestCount {
			best, bestCount = cat, c
		}
	}
	return best, true
}

// FromCurrentMonth keeps transactions dated inside the reference date's
// calendar month.
func FromCurrentMonth(transactions []core.Transaction, now time.Time) []core.Transaction {
	start := startOfMonth(now)
	return inRange(transactions, start, start.AddDate(0, 1, 0))
}

// FromLastMonth keeps transactions dated inside the calendar month
// before the reference date's.
func FromLastMonth(transactions []core.Transaction, now time.Time) []core.Transaction {
	end := startOfMonth(now)
	return inRange(transactions, end.AddDate(0, -1, 0), end)
}

// FromLastThreeMonths keeps transactions from the reference date's
// month and the two full months before it.
func FromLastThreeMonths(transactions []core.Transaction, now time.Time) []core.Transaction {
	start := startOfMonth(now).AddDate(0, -2, 0)
	return inRange(transactions, start, startOfMonth(now).AddDate(0, 1, 0))
}

func inRange(transactions []core.Transaction, start, end time.Time) []core.Transaction {
	var out []core.Transaction
	for _, tx := range transactions {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns Monday 00:00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	shift := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -shift)
}
