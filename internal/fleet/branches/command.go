package branches

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	commandUseConstant                    = "branch [pattern]"
	commandShortDescriptionConstant       = "List local branches of installed repositories"
	commandLongDescriptionConstant        = "branch runs git branch --verbose in every installed catalogued repository."
	commandExecutionErrorTemplateConstant = "branch failed: %w"
	maximumPositionalArgumentsConstant    = 1
)

// CommandBuilder assembles the branch command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// Build constructs the branch command.
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

	listOptions := Options{Catalogue: loadedCatalogue, Pattern: patternArgument(arguments)}

	listError := service.List(command.Context(), listOptions)
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	return nil
}

func patternArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
