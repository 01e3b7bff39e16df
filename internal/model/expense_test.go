package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseComplete(t *testing.T) {
	full := Expense{Date: "2025-01-03", Category: "Food", Amount: decimal.RequireFromString("12.50"), Description: "Lunch"}
	assert.True(t, full.Complete())

	tests := []struct {
		name string
		exp  Expense
	}{
		{"no date", Expense{Category: "Food", Description: "Lunch"}},
		{"no category", Expense{Date: "2025-01-03", Description: "Lunch"}},
		{"no description", Expense{Date: "2025-01-03", Category: "Food"}},
	}
	for _, tt := range tests {
		assert.False(t, tt.exp.Complete(), tt.name)
	}

	// A zero amount is still an amount.
	zero := full
	zero.Amount = decimal.Zero
	assert.True(t, zero.Complete())
}

func TestRawRowFields(t *testing.T) {
	var row RawRow
	for _, f := range Fields {
		row.Set(f, f+"-value")
	}
	row.Set("notes", "ignored")

	assert.Equal(t, "date-value", row.Date)
	assert.Equal(t, "category-value", row.Category)
	assert.Equal(t, "amount-value", row.Amount)
	assert.Equal(t, "description-value", row.Description)
	assert.Empty(t, row.Get("notes"))
	assert.Empty(t, row.MissingField())

	row.Category = ""
	row.Description = ""
	assert.Equal(t, FieldCategory, row.MissingField(), "first missing field in column order")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.50", "12.5"},
		{" 7 ", "7"},
		{"-3.25", "-3.25"},
		{"+4", "4"},
		{"1e3", "1000"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "input %q: got %s", tt.input, got)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12,50", "1.2.3", "NaN", "inf", "$5"} {
		_, err := ParseAmount(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.5", "12.50"},
		{"7", "7.00"},
		{"-3.25", "-3.25"},
		{"0.1", "0.10"},
		{"1.005", "1.005"},
		{"3500", "3500.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.input)), "input %q", tt.input)
	}
}
