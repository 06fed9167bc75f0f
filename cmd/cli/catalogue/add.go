package catalogue

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
	"github.com/temirov/gitcat/internal/gitrepo"
)

const (
	addCommandUseConstant                = "add [path]"
	addCommandShortDescriptionConstant   = "Catalogue the repository at the given path"
	addCommandLongDescriptionConstant    = "add resolves the repository top level, reads its origin push URL, and records the canonical form of that URL in the catalogue file."
	addedMessageTemplateConstant         = "added %s\n"
	currentDirectoryPathConstant         = "."
	topLevelErrorTemplateConstant        = "unable to resolve repository top level for %s: %w"
	remoteURLErrorTemplateConstant       = "unable to read the origin push URL of %s: %w"
	invalidRemoteURLTemplateConstant     = "unsupported remote URL %s: %w"
	cataloguePathMissingMessageConstant  = "catalogue path provider not configured"
	maximumAddPositionalArgumentConstant = 1
)

// ErrCataloguePathProviderNotConfigured indicates the catalogue path provider was missing.
var ErrCataloguePathProviderNotConfigured = errors.New(cataloguePathMissingMessageConstant)

// AddCommandBuilder assembles the add command.
type AddCommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CataloguePathProvider        func() (string, error)
	Store                        *catalogue.Store
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// Build constructs the add command.
func (builder *AddCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   addCommandUseConstant,
		Short: addCommandShortDescriptionConstant,
		Long:  addCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumAddPositionalArgumentConstant),
		RunE:  builder.run,
	}, nil
}

func (builder *AddCommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryPath := currentDirectoryPathConstant
	if len(arguments) > 0 {
		repositoryPath = arguments[0]
	}

	logger := shared.ResolveLogger(builder.LoggerProvider)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	executionContext := command.Context()

	topLevelDirectory, topLevelError := repositoryManager.TopLevelDirectory(executionContext, repositoryPath)
	if topLevelError != nil {
		return fmt.Errorf(topLevelErrorTemplateConstant, repositoryPath, topLevelError)
	}

	remoteURL, remoteError := repositoryManager.GetRemoteURL(executionContext, topLevelDirectory)
	if remoteError != nil {
		return fmt.Errorf(remoteURLErrorTemplateConstant, topLevelDirectory, remoteError)
	}

	canonicalRemoteURL, canonicalError := gitrepo.CanonicalRemoteURL(remoteURL)
	if canonicalError != nil {
		return fmt.Errorf(invalidRemoteURLTemplateConstant, remoteURL, canonicalError)
	}

	cataloguePath, store, pathError := resolveCatalogueStore(builder.CataloguePathProvider, builder.Store)
	if pathError != nil {
		return pathError
	}

	loadedCatalogue, loadError := store.LoadOrEmpty(cataloguePath)
	if loadError != nil {
		return loadError
	}

	repositoryName := loadedCatalogue.ShortPath(topLevelDirectory)
	if addError := loadedCatalogue.Add(repositoryName, canonicalRemoteURL); addError != nil {
		return addError
	}

	if saveError := store.Save(cataloguePath, loadedCatalogue); saveError != nil {
		return saveError
	}

	fmt.Fprintf(command.OutOrStdout(), addedMessageTemplateConstant, repositoryName)
	return nil
}

func resolveCatalogueStore(cataloguePathProvider func() (string, error), store *catalogue.Store) (string, *catalogue.Store, error) {
	if cataloguePathProvider == nil {
		return "", nil, ErrCataloguePathProviderNotConfigured
	}

	cataloguePath, pathError := cataloguePathProvider()
	if pathError != nil {
		return "", nil, pathError
	}

	resolvedStore := store
	if resolvedStore == nil {
		resolvedStore = catalogue.NewStore(nil)
	}

	return cataloguePath, resolvedStore, nil
}
