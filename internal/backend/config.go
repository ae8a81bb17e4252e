package backend

import (
	"fmt"

	"wealthify/internal/config"
)

// FromAppConfig converts the application config to store config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	storeType := StoreType(appConfig.SessionBackend)
	if !storeType.IsValid() {
		return Config{}, fmt.Errorf("invalid session backend in config: %s", appConfig.SessionBackend)
	}

	return Config{
		Type:         storeType,
		SessionFile:  appConfig.SessionFile,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid session backend: %s", c.Type)
	}

	switch c.Type {
	case FileStore:
		if c.SessionFile == "" {
			return fmt.Errorf("session file path is required for file backend")
		}
	case SQLiteStore:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryStore:
		// nothing to configure
	}

	return nil
}

// GetStoreTypeStrings returns all valid backend names.
func GetStoreTypeStrings() []string {
	types := []StoreType{MemoryStore, FileStore, SQLiteStore}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
