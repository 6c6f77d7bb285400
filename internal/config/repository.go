package config

import (
	"fmt"
	"os"

	"task-tracker/internal/repository"
	"task-tracker/internal/repository/sqlite"
	"task-tracker/internal/repository/textfile"
)

// CreateRepository opens the storage backend selected by the configuration
func CreateRepository(config *Config) (repository.Repository, error) {
	dirPerm := os.FileMode(config.Storage.DirPermissions)

	switch config.Storage.Backend {
	case BackendText:
		repo, err := textfile.New(config.GetTextFilePath(), dirPerm)
		if err != nil {
			return nil, fmt.Errorf("failed to open task file: %w", err)
		}
		return repo, nil
	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, dirPerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err := sqlite.New(config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: "unknown storage backend '" + config.Storage.Backend + "'"}
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
