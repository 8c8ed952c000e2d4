package services

import (
	"context"
	"errors"
	"fmt"

	"moneybook/internal/core"
	applog "moneybook/internal/log"
	"moneybook/internal/query"
	"moneybook/internal/report"
	"moneybook/internal/storage"
	"moneybook/internal/store"
)

// LedgerService owns the transaction store for one run and connects it to
// its persister and, optionally, to an event publisher.
// It is not safe for concurrent use.
type LedgerService struct {
	store     *store.Store
	persister Persister
	publisher Publisher
	logger    *applog.Logger
}

// NewLedgerService creates a service with an empty store. publisher may be nil.
func NewLedgerService(persister Persister, publisher Publisher, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LedgerService{
		store:     store.New(),
		persister: persister,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentLedger),
	}
}

// Load replaces the store with the persisted ledger.
//
// When nothing was saved yet the store is emptied and storage.ErrNotFound is
// returned. On any other failure the store is left untouched.
func (s *LedgerService) Load(ctx context.Context) error {
	txs, err := s.persister.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.store.ReplaceAll(nil)
		s.logger.InfoContext(ctx, "No saved ledger, starting empty",
			applog.FieldLocation, s.persister.Location())
		return err
	}
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	s.store.ReplaceAll(txs)
	s.logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldLocation, s.persister.Location(),
		applog.FieldCount, len(txs))
	return nil
}

// Add validates and appends a transaction. An invalid transaction leaves
// the store unchanged.
func (s *LedgerService) Add(ctx context.Context, date, kind, category string, amount float64, description string) (core.Transaction, error) {
	t, err := core.NewTransaction(date, kind, category, amount, description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.store.Append(t)
	s.logger.DebugContext(ctx, "Transaction added",
		applog.NewFields().
			WithOperation(applog.OpAdd).
			WithTransaction(t.Date, t.Kind.String(), t.Category, t.Amount).
			ToSlice()...)

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionAdded(ctx, t, s.store.Len()); err != nil {
			// the transaction is stored; the event is best effort
			s.logger.WarnContext(ctx, "Failed to publish transaction event", applog.FieldError, err)
		}
	}

	return t, nil
}

// Save writes every transaction to the persister.
func (s *LedgerService) Save(ctx context.Context) error {
	txs := s.store.All()
	if err := s.persister.Save(ctx, txs); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	s.logger.InfoContext(ctx, "Ledger saved",
		applog.FieldLocation, s.persister.Location(),
		applog.FieldCount, len(txs))

	if s.publisher != nil {
		if err := s.publisher.PublishLedgerSaved(ctx, len(txs), s.persister.Location()); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish save event", applog.FieldError, err)
		}
	}
	return nil
}

// All returns every transaction in insertion order.
func (s *LedgerService) All() []core.Transaction {
	return s.store.All()
}

func (s *LedgerService) Len() int {
	return s.store.Len()
}

// ExpensesOver returns expenses strictly above threshold.
func (s *LedgerService) ExpensesOver(threshold float64) []core.Transaction {
	return query.FilterExpensesOver(s.store.All(), threshold)
}

// SearchCategory returns transactions whose category contains keyword.
func (s *LedgerService) SearchCategory(keyword string) []core.Transaction {
	return query.SearchByCategory(s.store.All(), keyword)
}

// SortedByAmount returns transactions from the largest amount down.
func (s *LedgerService) SortedByAmount() []core.Transaction {
	return query.SortByAmountDescending(s.store.All())
}

// MonthlySpending sums expenses per month.
func (s *LedgerService) MonthlySpending() report.MonthlyTotals {
	return report.MonthlySpending(s.store.All())
}

// Location describes where the ledger is persisted.
func (s *LedgerService) Location() string {
	return s.persister.Location()
}

// Close releases the persister and the publisher.
func (s *LedgerService) Close() error {
	var errs []error

	if s.persister != nil {
		if err := s.persister.Close(); err != nil {
			errs = append(errs, fmt.Errorf("persister: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}
	return nil
}
