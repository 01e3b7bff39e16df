package ledger

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/cleared-dev/tally/internal/model"
)

// SkipReason classifies why a stored row was not loaded.
type SkipReason string

const (
	ReasonIncomplete    SkipReason = "incomplete"
	ReasonInvalidAmount SkipReason = "invalid-amount"
)

// RowError describes a single row rejected by the load gate.
type RowError struct {
	Line   int
	Reason SkipReason
	Field  string // first missing field, for ReasonIncomplete
	Value  string // offending text, for ReasonInvalidAmount
	Err    error
}

func (e *RowError) Error() string {
	switch e.Reason {
	case ReasonIncomplete:
		return fmt.Sprintf("line %d: missing %s", e.Line, e.Field)
	case ReasonInvalidAmount:
		return fmt.Sprintf("line %d: invalid amount %q", e.Line, e.Value)
	default:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ValidateRow turns a raw row into an Expense. Every field must be present
// before the amount is even looked at.
func ValidateRow(row model.RawRow) (model.Expense, error) {
	exp, rerr := validateRow(row)
	if rerr != nil {
		return model.Expense{}, rerr
	}
	return exp, nil
}

func validateRow(row model.RawRow) (model.Expense, *RowError) {
	if field := row.MissingField(); field != "" {
		return model.Expense{}, &RowError{Line: row.Line, Reason: ReasonIncomplete, Field: field}
	}

	amount, err := model.ParseAmount(row.Amount)
	if err != nil {
		return model.Expense{}, &RowError{Line: row.Line, Reason: ReasonInvalidAmount, Value: row.Amount, Err: err}
	}

	return model.Expense{
		Date:        row.Date,
		Category:    row.Category,
		Amount:      amount,
		Description: row.Description,
	}, nil
}

// LoadResult is the outcome of loading a batch of rows.
type LoadResult struct {
	Expenses []model.Expense
	Skipped  []*RowError
}

// Err combines all skip diagnostics into one error, or nil if nothing was skipped.
func (r *LoadResult) Err() error {
	var err error
	for _, s := range r.Skipped {
		err = multierr.Append(err, s)
	}
	return err
}

// Collect validates rows in order, keeping accepted expenses and skip diagnostics.
func Collect(rows []model.RawRow) *LoadResult {
	res := &LoadResult{}
	for _, row := range rows {
		exp, rerr := validateRow(row)
		if rerr != nil {
			res.Skipped = append(res.Skipped, rerr)
			continue
		}
		res.Expenses = append(res.Expenses, exp)
	}
	return res
}
