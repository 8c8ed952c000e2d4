// Package query derives filtered and sorted views of a ledger.
//
// Every function returns a fresh slice and leaves its input untouched.
package query

import (
	"cmp"
	"slices"
	"strings"

	"moneybook/internal/core"
)

// DefaultExpenseThreshold is the amount used by the "expenses over" view
// when nothing else is configured.
const DefaultExpenseThreshold = 100.0

// FilterExpensesOver keeps expenses whose amount is strictly greater than threshold.
func FilterExpensesOver(txs []core.Transaction, threshold float64) []core.Transaction {
	out := make([]core.Transaction, 0)
	for _, t := range txs {
		if t.IsExpense() && t.Amount > threshold {
			out = append(out, t)
		}
	}
	return out
}

// SearchByCategory keeps transactions whose category contains keyword,
// ignoring case. An empty keyword matches everything.
func SearchByCategory(txs []core.Transaction, keyword string) []core.Transaction {
	needle := strings.ToLower(keyword)
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Category), needle) {
			out = append(out, t)
		}
	}
	return out
}

// SortByAmountDescending orders by amount, largest first.
// Equal amounts keep their original relative order.
func SortByAmountDescending(txs []core.Transaction) []core.Transaction {
	out := slices.Clone(txs)
	if out == nil {
		out = make([]core.Transaction, 0)
	}
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	return out
}
