// Package session runs the interactive expense-tracker menu.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/budget"
	"github.com/cleared-dev/tally/internal/cli"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Storage loads and saves the full expense sequence.
type Storage interface {
	Load(ctx context.Context) (*ledger.LoadResult, error)
	Save(ctx context.Context, expenses []model.Expense) error
}

// Options configures a Session. Zero values fall back to sensible defaults.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Logger   *zap.Logger
	Currency string
	AuditLog string           // activity log path; empty disables it
	Now      func() time.Time // clock for activity log timestamps
}

// Session owns the state of one interactive run.
type Session struct {
	id       string
	storage  Storage
	ledger   *ledger.Ledger
	budget   budget.Tracker
	in       *bufio.Reader
	pending  chan readResult // in-flight read, kept across a cancel
	out      io.Writer
	log      *zap.Logger
	currency string
	auditLog string
	now      func() time.Time

	// loadFailed is set when the stored file could not be read in full;
	// saving would then replace it with a partial ledger.
	loadFailed bool
}

// New creates a session backed by storage.
func New(storage Storage, opts Options) *Session {
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	in := opts.In
	if in == nil {
		in = eofReader{}
	}

	return &Session{
		id:       id,
		storage:  storage,
		ledger:   ledger.New(),
		in:       bufio.NewReader(in),
		out:      out,
		log:      logger.With(zap.String("session", id)),
		currency: opts.Currency,
		auditLog: opts.AuditLog,
		now:      now,
	}
}

// ID returns the session identifier attached to log lines.
func (s *Session) ID() string {
	return s.id
}

// Ledger exposes the in-memory expenses.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Run loads the ledger and serves the menu until Exit or end of input.
// Canceling ctx interrupts a pending prompt; nothing is saved then.
func (s *Session) Run(ctx context.Context) error {
	s.load(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.showMenu()
		line, err := s.prompt(ctx, "Enter your option (1-5): ")
		if errors.Is(err, io.EOF) {
			s.println()
			s.exit(ctx)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		s.println()

		choice, err := parseChoice(line)
		switch {
		case errors.Is(err, ErrNotANumber):
			s.println("Invalid input. Please enter a number.")
			s.println()
			continue
		case errors.Is(err, ErrInvalidChoice):
			s.println("Invalid option. Please choose 1-5.")
			s.println()
			continue
		}

		if choice == ChoiceExit {
			s.exit(ctx)
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				s.println()
				s.exit(ctx)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, c Choice) error {
	switch c {
	case ChoiceAdd:
		return s.addExpense(ctx)
	case ChoiceView:
		s.viewExpenses()
	case ChoiceBudget:
		return s.setAndTrackBudget(ctx)
	case ChoiceSave:
		s.save(ctx)
	}
	return nil
}

func (s *Session) showMenu() {
	s.println(cli.RenderTitle("Expense Tracker"))
	for _, c := range menu {
		s.printf("%d. %s\n", c, c)
	}
}

func (s *Session) exit(ctx context.Context) {
	if s.loadFailed {
		s.log.Warn("skipping save on exit after failed load")
		s.println(cli.Warn("Not saving: the expenses file could not be fully loaded."))
		s.println("Choose 4 to overwrite it with the expenses shown.")
		s.println()
	} else {
		s.save(ctx)
	}
	s.println("Exiting the program. Goodbye!")
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// eofReader is an input that is always at end of file.
type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
