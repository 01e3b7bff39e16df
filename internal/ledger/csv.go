package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for the expenses file.
const Header = "date,category,amount,description"

const (
	numFields = 4
	colDate   = 0
	colCat    = 1
	colAmount = 2
	colDesc   = 3
)

// ReadRows reads the raw data rows of an expenses CSV. Columns are matched
// by header name, so their order may vary and unknown columns are ignored.
// Quoting is lenient: a stray quote in a hand-edited field is kept as text.
// On a read error the rows read so far are returned along with the error.
func ReadRows(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var rows []model.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("reading expenses CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		row := model.RawRow{Line: line}
		for i, value := range rec {
			if i < len(columns) {
				row.Set(columns[i], value)
			}
		}
		rows = append(rows, row)
	}
}

// WriteExpenses writes expenses to w, including the header.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date
	row[colCat] = e.Category
	row[colAmount] = model.FormatAmount(e.Amount)
	row[colDesc] = e.Description
	return row
}
