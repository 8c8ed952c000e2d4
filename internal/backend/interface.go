package backend

import (
	"context"
	"time"

	"moneybook/internal/services"
)

// CleanupFunc releases the resources held by a backend
type CleanupFunc func() error

// BackendResult contains the ledger service and its cleanup function
type BackendResult struct {
	Ledger  *services.LedgerService
	Cleanup CleanupFunc

	// EventsEnabled reports whether ledger events reach a broker
	EventsEnabled bool
}

// Factory creates ledger backends based on configuration
type Factory interface {
	// CreateBackend opens the configured persister and, when configured,
	// the event publisher.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// JSON specific
	LedgerFile string

	// SQLite specific
	SQLiteDBPath string

	// AMQP (optional)
	AMQPURL            string
	AMQPExchange       string
	AMQPQueue          string
	AMQPPublishTimeout time.Duration
}

// BackendType represents the type of backend
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
