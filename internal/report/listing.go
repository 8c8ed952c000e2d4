package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"moneybook/internal/core"
)

// WriteTransactions writes one line per transaction in the given order.
func WriteTransactions(w io.Writer, txs []core.Transaction) error {
	for _, t := range txs {
		if _, err := fmt.Fprintln(w, FormatTransaction(t)); err != nil {
			return fmt.Errorf("write transaction: %w", err)
		}
	}
	return nil
}

// FormatTransaction renders a transaction as a single pipe separated line.
func FormatTransaction(t core.Transaction) string {
	return fmt.Sprintf("%s | %s | %s | %.2f | %s", t.Date, t.Kind, t.Category, t.Amount, t.Description)
}

// MarkdownTable renders transactions as a GitHub flavored markdown table.
func MarkdownTable(txs []core.Transaction) string {
	var b strings.Builder
	b.WriteString("| Date | Type | Category | Amount | Description |\n")
	b.WriteString("|------|------|----------|-------:|-------------|\n")
	for _, t := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %s |\n",
			escapeCell(t.Date), t.Kind, escapeCell(t.Category), t.Amount, escapeCell(t.Description))
	}
	return b.String()
}

// RenderMarkdown formats markdown for the terminal.
func RenderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
