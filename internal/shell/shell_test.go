package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/core"
	applog "moneybook/internal/log"
	"moneybook/internal/services"
	"moneybook/internal/storage"
)

func newLedger(t *testing.T) (*services.LedgerService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.json")
	return services.NewLedgerService(storage.NewJSONFile(path), nil, applog.Discard()), path
}

func run(t *testing.T, ledger Ledger, input string, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(ledger, strings.NewReader(input), &out, opts, applog.Discard()).Run(context.Background())
	return out.String(), err
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestShell_ScenarioChartAndExit(t *testing.T) {
	ledger, path := newLedger(t)

	input := lines(
		"1", "2025-08-01", "expense", "Food", "50", "a",
		"1", "2025-08-15", "EXPENSE", "Food", "80", "b",
		"1", "2025-09-01", "expense", "Rent", "1000", "c",
		"6",
		"8",
	)
	out, err := run(t, ledger, input, Options{Threshold: 100})
	require.NoError(t, err)

	assert.Contains(t, out, "File not found. Starting with empty transaction list.")
	assert.Equal(t, 3, strings.Count(out, "Transaction added."))
	assert.Contains(t, out, "Monthly Spending Chart:\n")
	assert.Contains(t, out, "2025-08: ############# $130.00\n")
	assert.Contains(t, out, "2025-09: "+strings.Repeat("#", 100)+" $1000.00\n")
	assert.Contains(t, out, "3. Filter Expenses Over $100\n")
	assert.True(t, strings.HasSuffix(out, "Data saved to file.\n\nGoodbye!\n"))

	txs, err := storage.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, core.Expense, txs[1].Kind)
}

func TestShell_QueriesOnLoadedLedger(t *testing.T) {
	ledger, path := newLedger(t)
	require.NoError(t, storage.SaveFile(path, []core.Transaction{
		{Date: "2025-08-15", Kind: core.Expense, Category: "Food", Amount: 150, Description: "Grocery shopping"},
		{Date: "2025-08-20", Kind: core.Income, Category: "Salary", Amount: 2000, Description: "August"},
		{Date: "2025-08-21", Kind: core.Expense, Category: "Fast food", Amount: 12.5, Description: "Lunch"},
	}))

	out, err := run(t, ledger, lines("2", "3", "4", "FOOD", "4", "travel", "5", "8"), Options{Threshold: 100})
	require.NoError(t, err)

	assert.Contains(t, out, "Data loaded from file.")
	assert.Contains(t, out, "2025-08-15 | expense | Food | 150.00 | Grocery shopping\n")
	assert.Contains(t, out, "No transactions found for that category.")

	assert.Contains(t, out, lines(
		"2025-08-20 | income | Salary | 2000.00 | August",
		"2025-08-15 | expense | Food | 150.00 | Grocery shopping",
		"2025-08-21 | expense | Fast food | 12.50 | Lunch",
	))
}

func TestShell_EmptyLedgerMessages(t *testing.T) {
	ledger, _ := newLedger(t)

	out, err := run(t, ledger, lines("2", "3", "5", "6", "9", "8"), Options{Threshold: 100})
	require.NoError(t, err)

	assert.Contains(t, out, "No transactions to show.")
	assert.Contains(t, out, "No expenses over the specified amount.")
	assert.Contains(t, out, "No transactions to sort.")
	assert.Contains(t, out, "No spending data to display.")
	assert.Contains(t, out, "Invalid choice. Try again.")
}

func TestShell_InvalidInputLeavesLedgerUnchanged(t *testing.T) {
	ledger, _ := newLedger(t)

	input := lines(
		"1", "2025-08-01", "loan",
		"1", "2025-08-01", "expense", "Food", "abc",
		"8",
	)
	out, err := run(t, ledger, input, Options{Threshold: 100})
	require.NoError(t, err)

	assert.Contains(t, out, `Error: invalid type "loan"`)
	assert.Contains(t, out, `Error: invalid amount "abc"`)
	assert.NotContains(t, out, "Transaction added.")
	assert.Empty(t, ledger.All())
}

func TestShell_EndOfInputSaves(t *testing.T) {
	ledger, path := newLedger(t)

	out, err := run(t, ledger, lines("1", "2025-01-02", "income", "Gift", "12,5", "birthday"), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye!")

	txs, err := storage.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 12.5, txs[0].Amount)
}

func TestShell_EndOfInputDuringAddSaves(t *testing.T) {
	ledger, path := newLedger(t)

	_, err := run(t, ledger, lines("1", "2025-01-02"), Options{})
	require.NoError(t, err)

	txs, err := storage.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestShell_ParseErrorDoesNotOverwrite(t *testing.T) {
	ledger, path := newLedger(t)
	corrupt := []byte(`[{"date": "2025-08-15"`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	out, err := run(t, ledger, lines("8"), Options{})
	var pe *storage.ParseError
	require.ErrorAs(t, err, &pe)
	assert.NotContains(t, out, "Goodbye!")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

type addNotifier struct {
	Ledger
	added chan struct{}
}

func (n *addNotifier) Add(ctx context.Context, date, kind, category string, amount float64, description string) (core.Transaction, error) {
	t, err := n.Ledger.Add(ctx, date, kind, category, amount, description)
	n.added <- struct{}{}
	return t, err
}

func TestShell_InterruptSaves(t *testing.T) {
	ledger, path := newLedger(t)
	_, err := ledger.Add(context.Background(), "2025-08-15", "expense", "Food", 150, "Grocery shopping")
	require.NoError(t, err)
	require.NoError(t, storage.SaveFile(path, ledger.All()))

	pr, pw := io.Pipe()
	defer pw.Close()

	notifier := &addNotifier{Ledger: ledger, added: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- New(notifier, pr, &out, Options{}, applog.Discard()).Run(ctx)
	}()

	_, err = io.WriteString(pw, lines("1", "2025-08-16", "income", "Salary", "10", ""))
	require.NoError(t, err)
	select {
	case <-notifier.added:
	case <-time.After(5 * time.Second):
		t.Fatal("transaction was not added")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not stop after cancellation")
	}

	txs, err := storage.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestPrinter_MarkdownTable(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true, 80, nil)

	err := p.Transactions([]core.Transaction{
		{Date: "2025-08-15", Kind: core.Expense, Category: "Food", Amount: 150, Description: "Grocery shopping"},
	}, "none")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Grocery shopping")
	assert.Contains(t, out.String(), "150.00")
}
