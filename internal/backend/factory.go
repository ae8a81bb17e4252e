package backend

import (
	"context"
	"fmt"

	applog "wealthify/internal/log"
	"wealthify/internal/session"
	"wealthify/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(applog.ComponentStorage)}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*StoreResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryStore:
		f.logger.DebugContext(ctx, "Initialized memory session store")
		return &StoreResult{Store: session.NewMemoryStore()}, nil
	case FileStore:
		return f.createFileStore(ctx, config)
	case SQLiteStore:
		return f.createSQLiteStore(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileStore(ctx context.Context, config Config) (*StoreResult, error) {
	store, err := session.NewFileStore(config.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session file: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized file session store", "path", config.SessionFile)

	return &StoreResult{Store: store}, nil
}

func (f *DefaultFactory) createSQLiteStore(ctx context.Context, config Config) (*StoreResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite session store: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized SQLite session store", "db_path", config.SQLiteDBPath)

	return &StoreResult{Store: store, Cleanup: store.Close}, nil
}
