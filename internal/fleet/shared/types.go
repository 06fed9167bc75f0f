package shared

import (
	"context"
	"errors"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"go.uber.org/zap"
)

// GitExecutor exposes the subset of shell execution used by fleet services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes repository-level git inspection operations.
type GitRepositoryManager interface {
	IsGitRepository(executionContext context.Context, repositoryPath string) bool
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string) (string, error)
	ListChangedFiles(executionContext context.Context, repositoryPath string) ([]string, error)
	TopLevelDirectory(executionContext context.Context, repositoryPath string) (string, error)
}

// CatalogueProvider resolves the catalogue a fleet command operates on.
type CatalogueProvider func() (catalogue.Catalogue, error)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ResolveLogger returns the provided logger or a no-op fallback.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

const catalogueProviderMissingMessageConstant = "catalogue provider not configured"

// ErrCatalogueProviderNotConfigured indicates a command builder was assembled without a catalogue source.
var ErrCatalogueProviderNotConfigured = errors.New(catalogueProviderMissingMessageConstant)

// ResolveCatalogue loads the catalogue through the provider, guarding against missing wiring.
func ResolveCatalogue(provider CatalogueProvider) (catalogue.Catalogue, error) {
	if provider == nil {
		return catalogue.Catalogue{}, ErrCatalogueProviderNotConfigured
	}
	return provider()
}
