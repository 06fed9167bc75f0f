package passthrough

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	commandUseConstant                    = "git <arguments>..."
	commandShortDescriptionConstant       = "Run an arbitrary git command in every installed repository"
	commandLongDescriptionConstant        = "git forwards its arguments verbatim to the git binary inside every installed catalogued repository."
	commandExecutionErrorTemplateConstant = "git passthrough failed: %w"
	minimumPositionalArgumentsConstant    = 1
)

// CommandBuilder assembles the git passthrough command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// Build constructs the git passthrough command. Flag parsing is disabled so
// that flags intended for git reach git untouched.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:                commandUseConstant,
		Short:              commandShortDescriptionConstant,
		Long:               commandLongDescriptionConstant,
		Args:               cobra.MinimumNArgs(minimumPositionalArgumentsConstant),
		DisableFlagParsing: true,
		RunE:               builder.run,
	}, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	loadedCatalogue, catalogueError := shared.ResolveCatalogue(builder.CatalogueProvider)
	if catalogueError != nil {
		return catalogueError
	}

	service, serviceError := NewService(Dependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	runOptions := Options{Catalogue: loadedCatalogue, Arguments: arguments}

	runError := service.Run(command.Context(), runOptions)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}
