package services

import (
	"context"

	"moneybook/internal/core"
)

// Persister loads and saves the whole ledger at once.
// Load returns storage.ErrNotFound, with an empty ledger, when nothing was saved yet.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type Persister interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
	Location() string
	Close() error
}

// Publisher announces ledger changes to other processes.
type Publisher interface {
	PublishTransactionAdded(ctx context.Context, t core.Transaction, count int) error
	PublishLedgerSaved(ctx context.Context, count int, location string) error
	Close() error
}
