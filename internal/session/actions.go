package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/budget"
	"github.com/cleared-dev/tally/internal/cli"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

const incompleteNote = "incomplete entry, skipped"

func (s *Session) load(ctx context.Context) {
	res, err := s.storage.Load(ctx)
	if res != nil {
		s.ledger = ledger.New(res.Expenses...)
		for _, skipped := range res.Skipped {
			s.log.Warn("skipped stored row",
				zap.Int("line", skipped.Line),
				zap.String("reason", string(skipped.Reason)),
				zap.Error(skipped),
			)
		}
	}

	if err != nil {
		s.loadFailed = true
		s.log.Error("loading expenses", zap.Error(err))
		s.printf("Error loading expenses: %v\n", err)
		s.audit(auditlog.ActionLoadFail, s.ledger.Len(), err.Error())
	}

	if res == nil {
		s.println()
		return
	}

	if err != nil {
		s.printf("Loaded %s expenses before the error.\n", cli.FormatCount(len(res.Expenses)))
	} else {
		s.printf("Loaded %s expenses.\n", cli.FormatCount(len(res.Expenses)))
	}
	if n := len(res.Skipped); n > 0 {
		s.println(cli.Warn(fmt.Sprintf("Skipped %s invalid rows (see log for details).", cli.FormatCount(n))))
	}
	s.println()

	if err == nil {
		details := ""
		if n := len(res.Skipped); n > 0 {
			details = strconv.Itoa(n) + " rows skipped"
		}
		s.audit(auditlog.ActionLoad, len(res.Expenses), details)
	}
}

func (s *Session) addExpense(ctx context.Context) error {
	date, err := s.prompt(ctx, "Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	category, err := s.prompt(ctx, "Enter category (e.g., Food, Travel): ")
	if err != nil {
		return err
	}

	var amount decimal.Decimal
	for {
		text, err := s.prompt(ctx, "Enter amount spent: ")
		if err != nil {
			return err
		}
		if amount, err = model.ParseAmount(text); err == nil {
			break
		}
		s.println("Invalid amount. Please enter a number.")
	}

	description, err := s.prompt(ctx, "Enter a brief description: ")
	if err != nil {
		return err
	}

	s.ledger.Append(model.Expense{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	})
	s.log.Debug("expense added", zap.Int("position", s.ledger.Len()))
	s.println("Expense added.")
	s.println()
	return nil
}

func (s *Session) viewExpenses() {
	entries := s.ledger.Enumerate()
	if len(entries) == 0 {
		s.println("No expenses found.")
		s.println()
		return
	}

	rows := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		pos := strconv.Itoa(e.Position)
		if !e.Complete {
			rows = append(rows, []string{pos, cli.Muted(incompleteNote), "", "", ""})
			continue
		}
		rows = append(rows, []string{
			pos,
			e.Expense.Date,
			e.Expense.Category,
			s.money(e.Expense.Amount),
			e.Expense.Description,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "Total", s.money(s.ledger.Total()), ""})

	s.println()
	s.printf("%s", cli.RenderTable(cli.Table{
		Title:      "Stored Expenses",
		Headers:    []string{"#", "Date", "Category", "Amount", "Description"},
		Rows:       rows,
		AlignRight: []bool{true, false, false, true, false},
	}))
	s.println()
}

func (s *Session) setAndTrackBudget(ctx context.Context) error {
	if !s.budget.IsSet() {
		text, err := s.prompt(ctx, "Enter your monthly budget: ")
		if err != nil {
			return err
		}
		if err := s.budget.SetString(text); err != nil {
			s.log.Debug("budget rejected", zap.Error(err))
			s.println("Invalid input. Please enter a number.")
		} else {
			v, _ := s.budget.Value()
			s.printf("Monthly budget set to %s\n", s.money(v))
		}
		s.println()
	}

	s.trackBudget()
	return nil
}

func (s *Session) trackBudget() {
	report, err := s.budget.Track(s.ledger.Total())
	if errors.Is(err, budget.ErrBudgetNotSet) {
		s.println("Please set a budget first.")
		s.println()
		return
	}

	s.printf("Total expenses so far: %s\n", s.money(report.Spent))

	if cats := s.ledger.ByCategory(); len(cats) > 0 {
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{c.Category, cli.FormatCount(c.Count), s.money(c.Total)})
		}
		s.printf("%s", cli.RenderTable(cli.Table{
			Headers:    []string{"Category", "Entries", "Spent"},
			Rows:       rows,
			AlignRight: []bool{false, true, true},
		}))
	}

	if report.Exceeded {
		s.println(cli.Warn("You have exceeded your budget!"))
	} else {
		s.println(cli.Good(fmt.Sprintf("You have %s left for the month.", s.money(report.Remaining))))
	}
	s.println()
}

func (s *Session) save(ctx context.Context) {
	expenses := s.ledger.All()
	if err := s.storage.Save(ctx, expenses); err != nil {
		s.log.Error("saving expenses", zap.Error(err))
		s.printf("Error saving expenses: %v\n", err)
		s.println()
		s.audit(auditlog.ActionSaveFail, len(expenses), err.Error())
		return
	}
	s.loadFailed = false
	s.log.Info("expenses saved", zap.Int("count", len(expenses)))
	s.println("Expenses saved successfully.")
	s.println()
	s.audit(auditlog.ActionSave, len(expenses), "")
}

func (s *Session) audit(action string, records int, details string) {
	if s.auditLog == "" {
		return
	}
	err := auditlog.Append(s.auditLog, []auditlog.Entry{{
		Timestamp: s.now(),
		Session:   s.id,
		Action:    action,
		Records:   records,
		Details:   details,
	}})
	if err != nil {
		s.log.Warn("writing activity log", zap.String("path", s.auditLog), zap.Error(err))
	}
}

func (s *Session) money(d decimal.Decimal) string {
	return cli.FormatMoney(s.currency, d)
}
