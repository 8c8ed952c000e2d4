package shell

import (
	"errors"
	"fmt"
	"io"

	"moneybook/internal/core"
	applog "moneybook/internal/log"
	"moneybook/internal/report"
)

const defaultWidth = 100

// Printer writes ledger views in plain text or as rendered markdown.
type Printer struct {
	out      io.Writer
	markdown bool
	width    int
	logger   *applog.Logger
}

func NewPrinter(out io.Writer, markdown bool, width int, logger *applog.Logger) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Printer{out: out, markdown: markdown, width: width, logger: logger}
}

// Message prints msg followed by a blank line.
func (p *Printer) Message(msg string) {
	fmt.Fprintf(p.out, "%s\n\n", msg)
}

// Errorf prints a user facing error and a blank line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.out, "Error: "+format+"\n\n", args...)
}

// Transactions lists txs, or prints empty when there is nothing to list.
func (p *Printer) Transactions(txs []core.Transaction, empty string) error {
	if len(txs) == 0 {
		p.Message(empty)
		return nil
	}

	if p.markdown {
		rendered, err := report.RenderMarkdown(report.MarkdownTable(txs), p.width)
		if err == nil {
			_, err = io.WriteString(p.out, rendered)
			return err
		}
		p.logger.Warn("Falling back to plain output", applog.FieldError, err)
	}

	if err := report.WriteTransactions(p.out, txs); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

// Chart prints the monthly spending bar chart.
func (p *Printer) Chart(totals report.MonthlyTotals) error {
	if len(totals) == 0 {
		p.Message("No spending data to display.")
		return nil
	}

	fmt.Fprintln(p.out, "\nMonthly Spending Chart:")
	if err := report.RenderBarChart(p.out, totals); err != nil {
		if errors.Is(err, report.ErrNoSpending) {
			return nil
		}
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}
