// Package ledger holds the in-memory expense store and its CSV persistence.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Ledger is an ordered sequence of expenses. Insertion order is display order.
type Ledger struct {
	expenses []model.Expense
}

// New creates a Ledger holding the given expenses in order.
func New(expenses ...model.Expense) *Ledger {
	l := &Ledger{}
	l.expenses = append(l.expenses, expenses...)
	return l
}

// Entry is one enumerated expense with its display position.
type Entry struct {
	Position int // 1-based
	Expense  model.Expense
	Complete bool
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Append adds an expense to the end of the ledger without validating it.
func (l *Ledger) Append(e model.Expense) {
	l.expenses = append(l.expenses, e)
}

// Len returns the number of stored expenses.
func (l *Ledger) Len() int {
	return len(l.expenses)
}

// All returns a copy of the stored expenses in order.
func (l *Ledger) All() []model.Expense {
	out := make([]model.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Enumerate returns every expense tagged with its position and completeness.
func (l *Ledger) Enumerate() []Entry {
	entries := make([]Entry, len(l.expenses))
	for i, e := range l.expenses {
		entries[i] = Entry{
			Position: i + 1,
			Expense:  e,
			Complete: e.Complete(),
		}
	}
	return entries
}

// Total sums the amounts of all stored expenses.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory returns per-category subtotals in order of first appearance.
// Expenses with an empty category are grouped under "".
func (l *Ledger) ByCategory() []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, e := range l.expenses {
		i, seen := index[e.Category]
		if !seen {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
		totals[i].Count++
	}
	return totals
}
