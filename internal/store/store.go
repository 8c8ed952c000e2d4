// Package store holds the in-memory ledger of transactions for one run.
package store

import (
	"slices"

	"moneybook/internal/core"
)

// Store is an ordered, append-only collection of transactions.
// It is owned by a single goroutine and does no locking.
type Store struct {
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append adds the transaction at the end of the ledger.
func (s *Store) Append(t core.Transaction) {
	s.items = append(s.items, t)
}

// ReplaceAll discards the current contents and keeps a copy of txs.
func (s *Store) ReplaceAll(txs []core.Transaction) {
	s.items = slices.Clone(txs)
}

// All returns a copy of the transactions in insertion order.
func (s *Store) All() []core.Transaction {
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}
