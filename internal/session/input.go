package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotANumber is returned when a menu selection is not an integer.
	ErrNotANumber = errors.New("not a number")
	// ErrInvalidChoice is returned when a menu selection is out of range.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Choice is a menu option.
type Choice int

const (
	ChoiceAdd Choice = iota + 1
	ChoiceView
	ChoiceBudget
	ChoiceSave
	ChoiceExit
)

var menu = []Choice{ChoiceAdd, ChoiceView, ChoiceBudget, ChoiceSave, ChoiceExit}

func (c Choice) String() string {
	switch c {
	case ChoiceAdd:
		return "Add expense"
	case ChoiceView:
		return "View expenses"
	case ChoiceBudget:
		return "Set and track budget"
	case ChoiceSave:
		return "Save expenses"
	case ChoiceExit:
		return "Exit"
	default:
		return fmt.Sprintf("Choice(%d)", int(c))
	}
}

// parseChoice converts a menu selection to a Choice.
func parseChoice(s string) (Choice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	c := Choice(n)
	if c < ChoiceAdd || c > ChoiceExit {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChoice, n)
	}
	return c, nil
}

type readResult struct {
	line string
	err  error
}

// readLine returns the next input line without surrounding whitespace.
// A final line without a newline is still returned; io.EOF follows on the
// next call. If ctx is canceled first, the read stays pending and its line
// is delivered to the next call.
func (s *Session) readLine(ctx context.Context) (string, error) {
	if s.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := s.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		s.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-s.pending:
		s.pending = nil
		if r.err != nil && r.line == "" {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	s.printf("%s", label)
	return s.readLine(ctx)
}
