package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func expense(date, category, amount, desc string) model.Expense {
	return model.Expense{Date: date, Category: category, Amount: dec(amount), Description: desc}
}

func TestAppendPreservesOrder(t *testing.T) {
	l := New()
	l.Append(expense("2025-01-03", "Food", "12.50", "Lunch"))
	l.Append(expense("2025-01-04", "Travel", "7.00", "Bus"))
	l.Append(expense("2025-01-03", "Food", "12.50", "Lunch"))

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Lunch", all[0].Description)
	assert.Equal(t, "Bus", all[1].Description)
	assert.Equal(t, all[0], all[2], "duplicates are allowed")
}

func TestAllReturnsCopy(t *testing.T) {
	l := New(expense("2025-01-03", "Food", "1", "x"))
	all := l.All()
	all[0].Category = "changed"
	assert.Equal(t, "Food", l.All()[0].Category)
}

func TestEnumerate(t *testing.T) {
	l := New(
		expense("2025-01-03", "Food", "12.50", "Lunch"),
		expense("", "Food", "3.00", "No date"),
		expense("2025-01-05", "Travel", "7.00", "Bus"),
	)

	entries := l.Enumerate()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
	assert.True(t, entries[0].Complete)
	assert.False(t, entries[1].Complete)
	assert.True(t, entries[2].Complete)
}

func TestEnumerate_Empty(t *testing.T) {
	assert.Empty(t, New().Enumerate())
}

func TestTotal(t *testing.T) {
	l := New(
		expense("2025-01-03", "Food", "12.50", "Lunch"),
		expense("2025-01-04", "Travel", "7.00", "Bus"),
		expense("2025-01-05", "Refund", "-3.25", "Return"),
	)
	assert.True(t, l.Total().Equal(dec("16.25")), "got %s", l.Total())
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, New().Total().IsZero())
}

func TestTotal_IncludesIncompleteEntries(t *testing.T) {
	l := New(
		expense("2025-01-03", "Food", "10", "Lunch"),
		expense("", "", "5", ""),
	)
	assert.True(t, l.Total().Equal(dec("15")))
}

func TestByCategory(t *testing.T) {
	l := New(
		expense("2025-01-03", "Food", "12.50", "Lunch"),
		expense("2025-01-04", "Travel", "7.00", "Bus"),
		expense("2025-01-05", "Food", "3.50", "Snack"),
	)

	totals := l.ByCategory()
	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(dec("16.00")))
	assert.Equal(t, 2, totals[0].Count)
	assert.Equal(t, "Travel", totals[1].Category)
	assert.Equal(t, 1, totals[1].Count)
}
