package backend

import (
	"context"

	"wealthify/internal/session"
)

// CleanupFunc releases resources held by a session store.
type CleanupFunc func() error

// StoreResult contains the store instance and optional cleanup function
type StoreResult struct {
	Store   session.Store
	Cleanup CleanupFunc
}

// Factory creates session stores based on configuration
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*StoreResult, error)
}

// Config holds configuration for store creation
type Config struct {
	Type StoreType

	// File backend
	SessionFile string

	// SQLite backend
	SQLiteDBPath string
}

// StoreType names a session storage backend.
type StoreType string

const (
	MemoryStore StoreType = "memory"
	FileStore   StoreType = "file"
	SQLiteStore StoreType = "sqlite"
)

func (st StoreType) String() string {
	return string(st)
}

func (st StoreType) IsValid() bool {
	switch st {
	case MemoryStore, FileStore, SQLiteStore:
		return true
	default:
		return false
	}
}
