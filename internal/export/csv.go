// Package export serializes transaction sets for the share surface:
// CSV text, renderer-agnostic PDF page layouts and a spending trend
// chart. Serializers are pure; only the FileSink touches I/O.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rribeiro1/spendless/internal/core"
)

var csvHeader = []string{"id", "amount", "description", "note", "category", "type", "recurrence", "createdAt"}

// ToCSV renders transactions as RFC 4180 CSV. Fields containing the
// separator, quotes or newlines are quote-escaped, so free-text
// descriptions and notes survive a round trip.
func ToCSV(transactions []core.Transaction) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Amount.String(),
			tx.Description,
			tx.Note,
			string(tx.Category),
			string(tx.Type),
			string(tx.Recurrence),
			tx.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}

// FromCSV parses a CSV document produced by ToCSV.
func FromCSV(r io.Reader) ([]core.Transaction, error) {
	reader := csv.NewReader(r)

	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var out []core.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse id %q: %w", record[0], err)
		}
		amount, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("could not parse amount %q: %w", record[1], err)
		}
		createdAt, err := time.Parse(time.RFC3339, record[7])
		if err != nil {
			return nil, fmt.Errorf("could not parse createdAt %q: %w", record[7], err)
		}

		out = append(out, core.Transaction{
			ID:          id,
			Amount:      amount,
			Description: record[2],
			Note:        record[3],
			Category:    core.ParseCategory(record[4]),
			Type:        core.ParseTransactionType(record[5]),
			Recurrence:  core.ParseRecurrenceType(record[6]),
			CreatedAt:   createdAt,
		})
	}
	return out, nil
}
