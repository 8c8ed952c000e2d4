package report

import (
	"bytes"
	"strings"
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

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-08-15", "2025-08"},
		{"2025-08", "2025-08"},
		{"2025", "2025"},
		{"", ""},
		{"15/08/2025", "15/08/2"},
		{"2025/08/15", "2025/08"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthKey(tt.date), "MonthKey(%q)", tt.date)
	}
}

func TestMonthlySpendingScenario(t *testing.T) {
	got := MonthlySpending(scenario())
	assert.Equal(t, MonthlyTotals{"2025-08": 130.0, "2025-09": 1000.0}, got)
	assert.Equal(t, []string{"2025-08", "2025-09"}, got.Months())
}

func TestMonthlySpendingIgnoresIncomeAndKeepsMalformedDates(t *testing.T) {
	txs := append(scenario(),
		core.Transaction{Date: "2025-08-20", Kind: core.Income, Category: "Salary", Amount: 2000},
		core.Transaction{Date: "garbage", Kind: core.Expense, Category: "Misc", Amount: 5},
		core.Transaction{Date: "2024-12-31", Kind: core.Expense, Category: "Gifts", Amount: 25.5},
	)
	got := MonthlySpending(txs)

	assert.Equal(t, []string{"2024-12", "2025-08", "2025-09", "garbage"}, got.Months())
	assert.Equal(t, 130.0, got["2025-08"])
	assert.Equal(t, 5.0, got["garbage"])
}

func TestMonthlySpendingTotalMatchesExpenseSum(t *testing.T) {
	txs := append(scenario(),
		core.Transaction{Date: "2025-10-01", Kind: core.Expense, Amount: 12.25},
		core.Transaction{Date: "2025-10-02", Kind: core.Income, Amount: 999},
		core.Transaction{Date: "2025-11-01", Kind: core.Expense, Amount: -2.5},
	)
	var want float64
	for _, tx := range txs {
		if tx.IsExpense() {
			want += tx.Amount
		}
	}
	assert.InDelta(t, want, MonthlySpending(txs).Total(), 1e-9)
}

func TestRenderBarChartScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBarChart(&buf, MonthlySpending(scenario())))

	want := "2025-08: " + strings.Repeat("#", 13) + " $130.00\n" +
		"2025-09: " + strings.Repeat("#", 100) + " $1000.00\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderBarChartSmallAndNegativeTotals(t *testing.T) {
	var buf bytes.Buffer
	err := RenderBarChart(&buf, MonthlyTotals{"2025-01": 9.99, "2025-02": -40, "2025-03": 10})
	require.NoError(t, err)
	assert.Equal(t, "2025-01:  $9.99\n2025-02:  $-40.00\n2025-03: # $10.00\n", buf.String())
}

func TestRenderBarChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderBarChart(&buf, MonthlySpending([]core.Transaction{
		{Date: "2025-01-01", Kind: core.Income, Amount: 100},
	}))
	assert.ErrorIs(t, err, ErrNoSpending)
	assert.Zero(t, buf.Len())
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, scenario()[:2]))
	assert.Equal(t,
		"2025-08-01 | expense | Food | 50.00 | a\n2025-08-15 | expense | Food | 80.00 | b\n",
		buf.String())
}

func TestMarkdownTable(t *testing.T) {
	md := MarkdownTable([]core.Transaction{
		{Date: "2025-08-01", Kind: core.Expense, Category: "Food|Drink", Amount: 12.5, Description: "two\nlines"},
	})
	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `| 2025-08-01 | expense | Food\|Drink | 12.50 | two lines |`, lines[2])
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(MarkdownTable(scenario()), 120)
	require.NoError(t, err)
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "1000.00")
}
