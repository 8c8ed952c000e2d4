package backend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"moneybook/internal/amqp"
	applog "moneybook/internal/log"
	"moneybook/internal/services"
	"moneybook/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend.
//
// The persister and the broker connection are opened concurrently. A broker
// that cannot be reached only disables events; a persister that cannot be
// opened fails the whole backend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		persister  services.Persister
		amqpClient *amqp.Client
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := f.createPersister(config)
		if err != nil {
			return err
		}
		persister = p
		return nil
	})

	if config.AMQPURL != "" {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue,
				config.AMQPPublishTimeout, f.logger)
			if err != nil {
				f.logger.Warn("Failed to initialize AMQP client, continuing without events",
					applog.FieldError, err)
				return nil
			}
			amqpClient = client
			f.logger.Info("Initialized AMQP client",
				applog.FieldExchange, config.AMQPExchange,
				applog.FieldQueue, config.AMQPQueue)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if amqpClient != nil {
			amqpClient.Close()
		}
		return nil, err
	}

	// keep the interface nil when there is no client
	var publisher services.Publisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	ledger := services.NewLedgerService(persister, publisher, f.logger)

	f.logger.Info("Initialized ledger backend",
		applog.FieldBackend, config.Type.String(),
		applog.FieldLocation, persister.Location(),
		"events_enabled", publisher != nil)

	return &BackendResult{
		Ledger:        ledger,
		Cleanup:       ledger.Close,
		EventsEnabled: publisher != nil,
	}, nil
}

func (f *DefaultFactory) createPersister(config Config) (services.Persister, error) {
	switch config.Type {
	case JSONBackend:
		return storage.NewJSONFile(config.LedgerFile), nil
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Debug("Opened SQLite ledger",
			applog.FieldLocation, repo.Location(),
			applog.FieldSchemaVersion, repo.SchemaVersion())
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
