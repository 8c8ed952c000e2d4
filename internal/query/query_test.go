package query

import (
	"math"
	"testing"

	"moneybook/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() []core.Transaction {
	return []core.Transaction{
		{Date: "2025-08-01", Kind: core.Expense, Category: "Food", Amount: 50, Description: "a"},
		{Date: "2025-08-15", Kind: core.Expense, Category: "Food", Amount: 80, Description: "b"},
		{Date: "2025-09-01", Kind: core.Expense, Category: "Rent", Amount: 1000, Description: "c"},
	}
}

func TestFilterExpensesOver(t *testing.T) {
	mixed := append(scenario(),
		core.Transaction{Date: "2025-09-02", Kind: core.Income, Category: "Salary", Amount: 3000, Description: "d"},
		core.Transaction{Date: "2025-09-03", Kind: core.Expense, Category: "Fuel", Amount: 100, Description: "e"},
	)

	tests := []struct {
		name      string
		input     []core.Transaction
		threshold float64
		want      []string
	}{
		{
			name:      "default threshold keeps only rent",
			input:     scenario(),
			threshold: DefaultExpenseThreshold,
			want:      []string{"c"},
		},
		{
			name:      "income is never returned and threshold is exclusive",
			input:     mixed,
			threshold: 100,
			want:      []string{"c"},
		},
		{
			name:      "low threshold",
			input:     mixed,
			threshold: 60,
			want:      []string{"b", "c", "e"},
		},
		{
			name:      "infinite threshold",
			input:     mixed,
			threshold: math.Inf(1),
			want:      []string{},
		},
		{
			name:      "empty input",
			input:     nil,
			threshold: 0,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterExpensesOver(tt.input, tt.threshold)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, descriptions(got))
			for _, tx := range got {
				assert.Equal(t, core.Expense, tx.Kind)
				assert.Greater(t, tx.Amount, tt.threshold)
			}
		})
	}
}

func TestSearchByCategory(t *testing.T) {
	txs := append(scenario(),
		core.Transaction{Date: "2025-09-05", Kind: core.Expense, Category: "Fast food", Amount: 12, Description: "d"},
	)

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{name: "exact", keyword: "Rent", want: []string{"c"}},
		{name: "case insensitive", keyword: "FOOD", want: []string{"a", "b", "d"}},
		{name: "substring", keyword: "oo", want: []string{"a", "b", "d"}},
		{name: "no match", keyword: "travel", want: []string{}},
		{name: "empty keyword matches all", keyword: "", want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, descriptions(SearchByCategory(txs, tt.keyword)))
		})
	}
}

func TestSearchByCategoryEmptyKeywordReturnsInputUnchanged(t *testing.T) {
	txs := scenario()
	assert.Equal(t, txs, SearchByCategory(txs, ""))
}

func TestSortByAmountDescending(t *testing.T) {
	txs := []core.Transaction{
		{Kind: core.Expense, Amount: 10, Description: "first ten"},
		{Kind: core.Income, Amount: 500, Description: "salary"},
		{Kind: core.Expense, Amount: 10, Description: "second ten"},
		{Kind: core.Expense, Amount: -5, Description: "refund"},
		{Kind: core.Expense, Amount: 75.5, Description: "shoes"},
		{Kind: core.Expense, Amount: 10, Description: "third ten"},
	}
	original := append([]core.Transaction(nil), txs...)

	got := SortByAmountDescending(txs)

	assert.Equal(t, []string{"salary", "shoes", "first ten", "second ten", "third ten", "refund"}, descriptions(got))
	assert.ElementsMatch(t, original, got)
	assert.Equal(t, original, txs, "input must not be reordered")
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Amount, got[i].Amount)
	}
}

func TestSortByAmountDescendingEmpty(t *testing.T) {
	got := SortByAmountDescending(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFunctionsDoNotAliasInput(t *testing.T) {
	txs := scenario()
	got := FilterExpensesOver(txs, 0)
	got[0].Amount = -1
	assert.Equal(t, 50.0, txs[0].Amount)
}

func descriptions(txs []core.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.Description)
	}
	return out
}
