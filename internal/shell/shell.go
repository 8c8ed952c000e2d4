// Package shell runs the interactive numbered menu over a ledger.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moneybook/internal/core"
	applog "moneybook/internal/log"
	"moneybook/internal/report"
	"moneybook/internal/storage"
)

// Ledger is the part of the ledger service the menu drives.
type Ledger interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Add(ctx context.Context, date, kind, category string, amount float64, description string) (core.Transaction, error)
	All() []core.Transaction
	ExpensesOver(threshold float64) []core.Transaction
	SearchCategory(keyword string) []core.Transaction
	SortedByAmount() []core.Transaction
	MonthlySpending() report.MonthlyTotals
}

// Options tunes the menu.
type Options struct {
	Threshold float64
	Markdown  bool
	Width     int
}

// Shell reads menu choices line by line from in and writes to out.
type Shell struct {
	ledger  Ledger
	printer *Printer
	out     io.Writer
	lines   <-chan string
	opts    Options
	logger  *applog.Logger
}

func New(ledger Ledger, in io.Reader, out io.Writer, opts Options, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentShell)

	return &Shell{
		ledger:  ledger,
		printer: NewPrinter(out, opts.Markdown, opts.Width, logger),
		out:     out,
		lines:   readLines(in),
		opts:    opts,
		logger:  logger,
	}
}

// readLines feeds lines from in to the returned channel, closing it at end
// of input. The goroutine may outlive the shell while blocked on a read.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			ch <- strings.TrimRight(scanner.Text(), "\r")
		}
	}()
	return ch
}

// errQuit is returned by prompt when input ends or ctx is cancelled.
var errQuit = errors.New("quit")

func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", errQuit
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", errQuit
		}
		return line, nil
	}
}

// Run loads the ledger and serves the menu until Exit, end of input or
// cancellation of ctx. Every way out saves the ledger first.
//
// A ledger that exists but cannot be parsed is returned as an error before
// the menu starts, so the file is never overwritten.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.ledger.Load(ctx); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		s.printer.Message("File not found. Starting with empty transaction list.")
	} else {
		s.printer.Message("Data loaded from file.")
	}

	for {
		s.printMenu()
		choice, err := s.prompt(ctx, "Enter choice: ")
		if err != nil {
			return s.quit(ctx)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.addTransaction(ctx); errors.Is(err, errQuit) {
				return s.quit(ctx)
			}
		case "2":
			s.show(s.ledger.All(), "No transactions to show.")
		case "3":
			s.show(s.ledger.ExpensesOver(s.opts.Threshold), "No expenses over the specified amount.")
		case "4":
			keyword, err := s.prompt(ctx, "Enter category to search: ")
			if err != nil {
				return s.quit(ctx)
			}
			s.show(s.ledger.SearchCategory(keyword), "No transactions found for that category.")
		case "5":
			s.show(s.ledger.SortedByAmount(), "No transactions to sort.")
		case "6":
			if err := s.printer.Chart(s.ledger.MonthlySpending()); err != nil {
				s.logger.Warn("Failed to write chart", applog.FieldError, err)
			}
		case "7":
			if err := s.ledger.Save(ctx); err != nil {
				s.printer.Errorf("%v", err)
				continue
			}
			s.printer.Message("Data saved to file.")
		case "8":
			return s.quit(ctx)
		default:
			s.printer.Message("Invalid choice. Try again.")
		}
	}
}

func (s *Shell) printMenu() {
	threshold := strconv.FormatFloat(s.opts.Threshold, 'f', -1, 64)
	fmt.Fprintln(s.out, "1. Add Transaction")
	fmt.Fprintln(s.out, "2. Show All Transactions")
	fmt.Fprintf(s.out, "3. Filter Expenses Over $%s\n", threshold)
	fmt.Fprintln(s.out, "4. Search by Category")
	fmt.Fprintln(s.out, "5. Sort by Amount (Descending)")
	fmt.Fprintln(s.out, "6. Display ASCII Bar Chart")
	fmt.Fprintln(s.out, "7. Save to File")
	fmt.Fprintln(s.out, "8. Exit")
}

func (s *Shell) show(txs []core.Transaction, empty string) {
	if err := s.printer.Transactions(txs, empty); err != nil {
		s.logger.Warn("Failed to write transactions", applog.FieldError, err)
	}
}

// addTransaction asks for each field in turn. Bad input is reported and
// nothing is added.
func (s *Shell) addTransaction(ctx context.Context) error {
	date, err := s.prompt(ctx, "Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	rawKind, err := s.prompt(ctx, "Enter type (income/expense): ")
	if err != nil {
		return err
	}
	kind, err := core.ParseKindInput(rawKind)
	if err != nil {
		s.printer.Errorf("%v", err)
		return nil
	}
	category, err := s.prompt(ctx, "Enter category: ")
	if err != nil {
		return err
	}
	rawAmount, err := s.prompt(ctx, "Enter amount: ")
	if err != nil {
		return err
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		s.printer.Errorf("%v", err)
		return nil
	}
	description, err := s.prompt(ctx, "Enter description: ")
	if err != nil {
		return err
	}

	if _, err := s.ledger.Add(ctx, date, kind.String(), category, amount, description); err != nil {
		s.printer.Errorf("%v", err)
		return nil
	}
	s.printer.Message("Transaction added.")
	return nil
}

// quit saves and says goodbye. The save outlives a cancelled ctx.
func (s *Shell) quit(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.Info("Interrupted, saving before exit", applog.FieldOperation, applog.OpShutdown)
	}

	if err := s.ledger.Save(context.WithoutCancel(ctx)); err != nil {
		s.printer.Errorf("%v", err)
		return err
	}
	s.printer.Message("Data saved to file.")
	fmt.Fprintln(s.out, "Goodbye!")
	return nil
}
