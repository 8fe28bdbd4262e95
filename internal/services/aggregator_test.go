package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rribeiro1/spendless/internal/core"
)

func expense(id int64, amount string, at time.Time) core.Transaction {
	return core.Transaction{
		ID:          id,
		Amount:      decimal.RequireFromString(amount).Neg(),
		Description: "expense",
		Category:    core.CategoryFood,
		Type:        core.Expense,
		Recurrence:  core.RecurrenceNone,
		CreatedAt:   at,
	}
}

func income(id int64, amount string, at time.Time) core.Transaction {
	return core.Transaction{
		ID:          id,
		Amount:      decimal.RequireFromString(amount),
		Description: "income",
		Category:    core.CategoryIncome,
		Type:        core.Income,
		Recurrence:  core.RecurrenceNone,
		CreatedAt:   at,
	}
}

func TestGroupByDay_Headers(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	txs := []core.Transaction{
		expense(1, "10", time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)),
		expense(2, "20", time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)),
		expense(3, "30", time.Date(2024, time.March, 14, 22, 0, 0, 0, time.UTC)),
		expense(4, "40", time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)),
	}

	groups := GroupByDay(txs, now)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].DateHeader != "Today" {
		t.Errorf("groups[0] = %q, want Today", groups[0].DateHeader)
	}
	if groups[1].DateHeader != "Yesterday" {
		t.Errorf("groups[1] = %q, want Yesterday", groups[1].DateHeader)
	}
	if groups[2].DateHeader != "13 March 2024" {
		t.Errorf("groups[2] = %q, want 13 March 2024", groups[2].DateHeader)
	}

	// Within the Today bucket, descending time
	if groups[0].Transactions[0].ID != 4 || groups[0].Transactions[1].ID != 2 {
		t.Errorf("Today bucket order = %d,%d, want 4,2", groups[0].Transactions[0].ID, groups[0].Transactions[1].ID)
	}
}

func TestGroupByDay_StableForEqualTimestamps(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	at := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)

	txs := []core.Transaction{
		expense(1, "10", at),
		expense(2, "20", at),
		expense(3, "30", at),
	}

	groups := GroupByDay(txs, now)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	for i, tx := range groups[0].Transactions {
		if tx.ID != int64(i+1) {
			t.Errorf("position %d holds id %d, want insertion order preserved", i, tx.ID)
		}
	}
}

func TestGroupByDay_Empty(t *testing.T) {
	if groups := GroupByDay(nil, time.Now()); len(groups) != 0 {
		t.Errorf("got %d groups for empty input", len(groups))
	}
}

func TestBalance_TypeIsAuthoritative(t *testing.T) {
	at := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)

	// Income stored with a negative sign still adds; type wins over sign.
	miscoded := income(3, "100", at)
	miscoded.Amount = miscoded.Amount.Neg()

	txs := []core.Transaction{
		income(1, "2500", at),
		expense(2, "300.50", at),
		miscoded,
	}

	got := Balance(txs)
	want := decimal.RequireFromString("2299.50")
	if !got.Equal(want) {
		t.Errorf("Balance() = %s, want %s", got, want)
	}
}

func TestBalance_Empty(t *testing.T) {
	if got := Balance(nil); !got.IsZero() {
		t.Errorf("Balance(nil) = %s, want 0", got)
	}
}

func TestTotalForPreviousWeek(t *testing.T) {
	// Friday 2024-03-15; previous week is Mon 03-04 00:00 .. Mon 03-11 00:00
	reference := time.Date(2024, time.March, 15, 13, 0, 0, 0, time.UTC)

	txs := []core.Transaction{
		expense(1, "10", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)),       // window start, included
		expense(2, "20", time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)),   // last second, included
		expense(3, "40", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)),      // window end, excluded
		expense(4, "80", time.Date(2024, time.March, 3, 23, 59, 59, 0, time.UTC)),    // day before, excluded
		income(5, "1000", time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)),     // income never counted
		expense(6, "160", time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)),     // current week, excluded
	}

	got := TotalForPreviousWeek(txs, reference)
	want := decimal.RequireFromString("30")
	if !got.Equal(want) {
		t.Errorf("TotalForPreviousWeek() = %s, want %s", got, want)
	}
}

func TestTotalForPreviousWeek_RollsOverWithReference(t *testing.T) {
	tx := expense(1, "50", time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC))

	inWindow := TotalForPreviousWeek([]core.Transaction{tx}, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	if !inWindow.Equal(decimal.RequireFromString("50")) {
		t.Errorf("week of Mar 11-17: total = %s, want 50", inWindow)
	}

	// One week later the same transaction has left the window.
	outOfWindow := TotalForPreviousWeek([]core.Transaction{tx}, time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC))
	if !outOfWindow.IsZero() {
		t.Errorf("week of Mar 18-24: total = %s, want 0", outOfWindow)
	}
}

func TestLargestTransaction(t *testing.T) {
	at := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		if got := LargestTransaction(nil); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("any type by magnitude", func(t *testing.T) {
		txs := []core.Transaction{
			expense(1, "500", at),
			income(2, "400", at),
		}
		got := LargestTransaction(txs)
		if got == nil || got.ID != 1 {
			t.Errorf("got %+v, want id 1", got)
		}
	})

	t.Run("tie broken by most recent", func(t *testing.T) {
		txs := []core.Transaction{
			expense(1, "500", at),
			expense(2, "500", at.Add(time.Hour)),
		}
		got := LargestTransaction(txs)
		if got == nil || got.ID != 2 {
			t.Errorf("got %+v, want id 2", got)
		}
	})
}

func TestMostFrequentCategory(t *testing.T) {
	at := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		if _, ok := MostFrequentCategory(nil); ok {
			t.Error("expected ok=false for empty input")
		}
	})

	t.Run("highest count wins", func(t *testing.T) {
		txs := []core.Transaction{
			{Category: core.CategoryFood, CreatedAt: at},
			{Category: core.CategoryFood, CreatedAt: at},
			{Category: core.CategoryHome, CreatedAt: at},
		}
		got, ok := MostFrequentCategory(txs)
		if !ok || got != core.CategoryFood {
			t.Errorf("got %s, want food", got)
		}
	})

	t.Run("tie broken by declaration order", func(t *testing.T) {
		txs := []core.Transaction{
			{Category: core.CategoryFood, CreatedAt: at},
			{Category: core.CategoryHome, CreatedAt: at},
		}
		got, ok := MostFrequentCategory(txs)
		if !ok || got != core.CategoryHome {
			t.Errorf("got %s, want home (declared before food)", got)
		}
	})
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	january := expense(1, "10", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC))
	february := expense(2, "20", time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))
	march := expense(3, "30", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	december := expense(4, "40", time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC))
	all := []core.Transaction{january, february, march, december}

	if got := FromCurrentMonth(all, now); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("FromCurrentMonth = %v", ids(got))
	}
	if got := FromLastMonth(all, now); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("FromLastMonth = %v", ids(got))
	}
	if got := FromLastThreeMonths(all, now); len(got) != 3 {
		t.Errorf("FromLastThreeMonths = %v, want january, february, march", ids(got))
	}
}

func ids(txs []core.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}
