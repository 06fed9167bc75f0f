package diffs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	commandUseConstant                    = "diff [pattern]"
	commandShortDescriptionConstant       = "Show uncommitted changes in installed repositories"
	commandLongDescriptionConstant        = "diff runs git diff against HEAD in every installed catalogued repository."
	commandExecutionErrorTemplateConstant = "diff failed: %w"
	maximumPositionalArgumentsConstant    = 1
)

// CommandBuilder assembles the diff command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// Build constructs the diff command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.run,
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

	diffOptions := Options{Catalogue: loadedCatalogue, Pattern: patternArgument(arguments)}

	diffError := service.Diff(command.Context(), diffOptions)
	if diffError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, diffError)
	}

	return nil
}

func patternArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
