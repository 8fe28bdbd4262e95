package export

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rribeiro1/spendless/internal/core"
	"github.com/rribeiro1/spendless/internal/format"
)

// Row colors keyed by transaction type; the host renderer maps them to
// its own ink.
const (
	RowColorIncome  = "#1B5E20"
	RowColorExpense = "#B3261E"
)

// RowsPerPage is derived from the row height used by the host renderer.
const RowsPerPage = 24

// PageRow is one rendered transaction line.
type PageRow struct {
	Cells []string
	Color string
}

// Page is one page of the tabular PDF layout. The header block repeats
// on every page.
type Page struct {
	Number int
	Header []string
	Rows   []PageRow
}

// ToPDFLayout paginates transactions, most recent first, into page
// descriptors. Amounts are rendered with the caller's formatting
// preferences so the document matches what the app shows.
func ToPDFLayout(transactions []core.Transaction, prefs core.FormattingPreferences) []Page {
	sorted := make([]core.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	header := []string{"Date", "Description", "Category", "Amount"}

	var pages []Page
	for start := 0; start < len(sorted); start += RowsPerPage {
		end := start + RowsPerPage
		if end > len(sorted) {
			end = len(sorted)
		}

		page := Page{Number: len(pages) + 1, Header: header}
		for _, tx := range sorted[start:end] {
			color := RowColorExpense
			if tx.Type == core.Income {
				color = RowColorIncome
			}
			page.Rows = append(page.Rows, PageRow{
				Cells: []string{
					format.Date(tx.CreatedAt),
					tx.Description,
					tx.Category.Label(),
					format.Amount(signedAmount(tx), prefs),
				},
				Color: color,
			})
		}
		pages = append(pages, page)
	}
	return pages
}

// signedAmount applies the type-authoritative sign so the formatter's
// expense decoration is correct regardless of the stored sign.
func signedAmount(tx core.Transaction) decimal.Decimal {
	if tx.Type == core.Expense {
		return tx.Magnitude().Neg()
	}
	return tx.Magnitude()
}
