package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 14
	MaxNoteLength        = 100
)

type (
	// TransactionType drives which aggregate buckets a transaction
	// contributes to. It is authoritative for summation; the sign of
	// Amount is a storage convention only.
	TransactionType string

	RecurrenceType string

	// Transaction is an immutable record. All transformations produce
	// new values; materialized recurring instances are copies with a
	// cleared ID and Recurrence set to RecurrenceNone.
	Transaction struct {
		ID          int64
		Amount      decimal.Decimal // negative = outflow, positive = inflow
		Description string
		Note        string
		Category    Category
		Type        TransactionType
		Recurrence  RecurrenceType
		CreatedAt   time.Time
	}
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrNoteTooLong        = errors.New("note too long")
	ErrZeroDate           = errors.New("date cannot be zero")
)

// ParseTransactionType maps a stored name to a type, defaulting to
// Expense for unknown names.
func ParseTransactionType(s string) TransactionType {
	if strings.EqualFold(s, string(Income)) {
		return Income
	}
	return Expense
}

// ParseRecurrenceType maps a stored name to a recurrence, defaulting to
// RecurrenceNone for unknown names.
func ParseRecurrenceType(s string) RecurrenceType {
	switch RecurrenceType(strings.ToLower(s)) {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return RecurrenceType(strings.ToLower(s))
	default:
		return RecurrenceNone
	}
}

// Magnitude returns the absolute amount, used for all aggregation.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

func (t Transaction) Validate() error {
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len([]rune(desc)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len([]rune(t.Note)) > MaxNoteLength {
		return ErrNoteTooLong
	}
	if t.CreatedAt.IsZero() {
		return ErrZeroDate
	}
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}

// WithOccurrence returns a materialized copy of a recurring template for
// a single occurrence day: fresh record (ID 0), no further recurrence,
// CreatedAt at local midnight of the occurrence.
func (t Transaction) WithOccurrence(day time.Time) Transaction {
	out := t
	out.ID = 0
	out.Recurrence = RecurrenceNone
	out.CreatedAt = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return out
}
