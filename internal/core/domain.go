package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind tells whether a transaction brought money in or took it out.
	Kind string

	// Transaction is a single recorded income or expense event.
	// Date is kept as entered: it is expected to be YYYY-MM-DD but never parsed.
	Transaction struct {
		Date        string  `json:"date"`
		Kind        Kind    `json:"type"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseKind accepts "income" or "expense" in any case, ignoring surrounding spaces.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return fmt.Errorf("%w %q: must be %q or %q", ErrInvalidKind, string(k), Income, Expense)
	}
}

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Kind == Expense
}

// Validate checks the invariants a stored transaction must hold.
// The amount must be finite so the ledger stays encodable as JSON.
func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// NewTransaction builds a transaction, canonicalizing the kind to lowercase.
func NewTransaction(date, kind, category string, amount float64, description string) (Transaction, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Transaction{}, err
	}
	t := Transaction{
		Date:        date,
		Kind:        k,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
