package main

import (
	"fmt"
	"io"
	"os"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
	"task-tracker/internal/datetime"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository"
	"task-tracker/internal/services"
	"task-tracker/internal/validation"
)

// Environment represents the current environment
type Environment string

const (
	Production Environment = "production"
	Testing    Environment = "testing"
)

// getEnvironment reads TK_ENV. Anything but "testing" is production.
func getEnvironment() Environment {
	if os.Getenv("TK_ENV") == string(Testing) {
		return Testing
	}
	return Production
}

// createRepository opens the configured store, or a throwaway in-memory
// database when running in the testing environment.
func createRepository(cfg *config.Config) (repository.Repository, error) {
	if getEnvironment() == Testing {
		logging.Debugf("tk: testing environment, using an in-memory database")
		return config.CreateTestRepository()
	}
	return config.CreateRepository(cfg)
}

// openBusinessAPI wires the store, clock, parser and services for cfg.
func openBusinessAPI(cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
	repo, err := createRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	clk, err := cfg.Clock()
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("invalid TK_NOW: %w", err)
	}
	parser := datetime.NewParser(clk)

	container := services.NewServiceContainer(repo, parser, validation.NewTaskValidatorWithConfig(cfg))
	return api.NewBusinessAPI(container, parser), repo, nil
}
