package model

import "github.com/shopspring/decimal"

// Column names of the expenses file, in canonical order.
const (
	FieldDate        = "date"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
)

// Fields lists the four expense columns in canonical order.
var Fields = []string{FieldDate, FieldCategory, FieldAmount, FieldDescription}

// Expense is one validated expense entry.
type Expense struct {
	Date        string // free-form, e.g. "2025-01-03"
	Category    string
	Amount      decimal.Decimal // any sign
	Description string
}

// Complete reports whether every field of the expense is present.
// Entries added interactively with blank text fields are stored as-is
// and show up as incomplete.
func (e Expense) Complete() bool {
	return e.Date != "" && e.Category != "" && e.Description != ""
}

// RawRow is one data row as read from storage, before validation.
type RawRow struct {
	Line        int // 1-based line in the source, header is line 1
	Date        string
	Category    string
	Amount      string
	Description string
}

// Get returns the text of the named field.
func (r RawRow) Get(field string) string {
	switch field {
	case FieldDate:
		return r.Date
	case FieldCategory:
		return r.Category
	case FieldAmount:
		return r.Amount
	case FieldDescription:
		return r.Description
	default:
		return ""
	}
}

// Set stores text under the named field. Unknown fields are ignored.
func (r *RawRow) Set(field, value string) {
	switch field {
	case FieldDate:
		r.Date = value
	case FieldCategory:
		r.Category = value
	case FieldAmount:
		r.Amount = value
	case FieldDescription:
		r.Description = value
	}
}

// MissingField returns the first empty field in canonical order, or "".
func (r RawRow) MissingField() string {
	for _, f := range Fields {
		if r.Get(f) == "" {
			return f
		}
	}
	return ""
}
