// Package report aggregates expenses by month and renders them as text.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"moneybook/internal/core"
)

const (
	chartMarker = "#"
	// chartUnit is the amount represented by one marker.
	chartUnit   = 10.0
	monthKeyLen = 7
)

var ErrNoSpending = errors.New("no spending data")

// MonthlyTotals maps a month key (YYYY-MM) to the summed expense amount.
type MonthlyTotals map[string]float64

// MonthKey returns the first seven characters of a date string.
// The prefix is positional: malformed dates group under their literal prefix.
func MonthKey(date string) string {
	r := []rune(date)
	if len(r) <= monthKeyLen {
		return date
	}
	return string(r[:monthKeyLen])
}

// MonthlySpending sums expense amounts per month key. Income is ignored.
func MonthlySpending(txs []core.Transaction) MonthlyTotals {
	totals := MonthlyTotals{}
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		totals[MonthKey(t.Date)] += t.Amount
	}
	return totals
}

// Months returns the month keys in ascending order.
func (m MonthlyTotals) Months() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Total sums every month.
func (m MonthlyTotals) Total() float64 {
	var sum float64
	for _, k := range m.Months() {
		sum += m[k]
	}
	return sum
}

// RenderBarChart writes one line per month, oldest first:
//
//	2025-08: ############# $130.00
//
// It returns ErrNoSpending without writing anything when totals is empty.
func RenderBarChart(w io.Writer, totals MonthlyTotals) error {
	if len(totals) == 0 {
		return ErrNoSpending
	}
	for _, month := range totals.Months() {
		total := totals[month]
		if _, err := fmt.Fprintf(w, "%s: %s $%.2f\n", month, bar(total), total); err != nil {
			return fmt.Errorf("write chart line: %w", err)
		}
	}
	return nil
}

func bar(total float64) string {
	n := int(total / chartUnit)
	if n < 0 {
		n = 0
	}
	return strings.Repeat(chartMarker, n)
}
