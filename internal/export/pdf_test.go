package export

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rribeiro1/spendless/internal/core"
)

func TestToPDFLayout_Pagination(t *testing.T) {
	var txs []core.Transaction
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < RowsPerPage+5; i++ {
		txs = append(txs, core.Transaction{
			ID:          int64(i + 1),
			Amount:      decimal.RequireFromString("-10.00"),
			Description: fmt.Sprintf("tx %d", i),
			Category:    core.CategoryOther,
			Type:        core.Expense,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}

	pages := ToPDFLayout(txs, core.DefaultFormattingPreferences())
	require.Len(t, pages, 2)

	assert.Len(t, pages[0].Rows, RowsPerPage)
	assert.Len(t, pages[1].Rows, 5)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)

	// Header block repeats on every page
	for _, p := range pages {
		assert.Equal(t, []string{"Date", "Description", "Category", "Amount"}, p.Header)
	}

	// Most recent transaction first
	assert.Equal(t, fmt.Sprintf("tx %d", RowsPerPage+4), pages[0].Rows[0].Cells[1])
}

func TestToPDFLayout_RowColorsAndAmounts(t *testing.T) {
	txs := []core.Transaction{
		{
			ID:          1,
			Amount:      decimal.RequireFromString("1500"),
			Description: "Salary",
			Category:    core.CategoryIncome,
			Type:        core.Income,
			CreatedAt:   time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Amount:      decimal.RequireFromString("-25.50"),
			Description: "Cinema",
			Category:    core.CategoryEntertainment,
			Type:        core.Expense,
			CreatedAt:   time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		},
	}

	pages := ToPDFLayout(txs, core.DefaultFormattingPreferences())
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Rows, 2)

	income, expense := pages[0].Rows[0], pages[0].Rows[1]
	assert.Equal(t, RowColorIncome, income.Color)
	assert.Equal(t, RowColorExpense, expense.Color)
	assert.Equal(t, "$1,500.00", income.Cells[3])
	assert.Equal(t, "-$25.50", expense.Cells[3])
	assert.Equal(t, "Mar 2, 2024", income.Cells[0])
}

func TestToPDFLayout_Empty(t *testing.T) {
	assert.Empty(t, ToPDFLayout(nil, core.DefaultFormattingPreferences()))
}
