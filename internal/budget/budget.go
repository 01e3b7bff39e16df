// Package budget tracks a single monthly spending threshold.
package budget

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrBudgetNotSet is returned by Track before any budget has been set.
	ErrBudgetNotSet = errors.New("budget not set")
	// ErrInvalidBudget is returned when budget text is not a number.
	ErrInvalidBudget = errors.New("invalid budget")
)

// Tracker holds an optional budget. A nil value means unset; zero is a
// legitimate budget.
type Tracker struct {
	value *decimal.Decimal
}

// Report compares spending against the budget.
type Report struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal // Budget - Spent, negative when exceeded
	Exceeded  bool
}

// Set stores a budget, replacing any previous value.
func (t *Tracker) Set(v decimal.Decimal) {
	t.value = &v
}

// SetString parses and stores a budget. On failure the previous budget is kept.
func (t *Tracker) SetString(s string) error {
	v, err := model.ParseAmount(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBudget, err)
	}
	t.Set(v)
	return nil
}

// IsSet reports whether a budget has been set.
func (t *Tracker) IsSet() bool {
	return t.value != nil
}

// Value returns the budget and whether one is set.
func (t *Tracker) Value() (decimal.Decimal, bool) {
	if t.value == nil {
		return decimal.Zero, false
	}
	return *t.value, true
}

// Track compares total spending against the budget.
func (t *Tracker) Track(spent decimal.Decimal) (Report, error) {
	b, ok := t.Value()
	if !ok {
		return Report{}, ErrBudgetNotSet
	}
	return Report{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Sub(spent),
		Exceeded:  spent.GreaterThan(b),
	}, nil
}
