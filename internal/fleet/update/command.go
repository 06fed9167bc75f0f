package update

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	pullCommandUseConstant              = "pull [pattern]"
	pullCommandShortDescriptionConstant = "Fast-forward installed repositories from their remotes"
	pullCommandLongDescriptionConstant  = "pull runs git pull --ff-only in every installed catalogued repository."
	pullExecutionErrorTemplateConstant  = "pull failed: %w"
	fetchCommandUseConstant             = "fetch [pattern]"
	fetchCommandShortDescription        = "Update remote tracking branches of installed repositories"
	fetchCommandLongDescription         = "fetch runs git fetch --prune in every installed catalogued repository."
	fetchExecutionErrorTemplateConstant = "fetch failed: %w"
	maximumPositionalArgumentsConstant  = 1
)

// CommandBuilder assembles the pull and fetch commands.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// BuildPull constructs the pull command.
func (builder *CommandBuilder) BuildPull() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   pullCommandUseConstant,
		Short: pullCommandShortDescriptionConstant,
		Long:  pullCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.runPull,
	}, nil
}

// BuildFetch constructs the fetch command.
func (builder *CommandBuilder) BuildFetch() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   fetchCommandUseConstant,
		Short: fetchCommandShortDescription,
		Long:  fetchCommandLongDescription,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.runFetch,
	}, nil
}

func (builder *CommandBuilder) runPull(command *cobra.Command, arguments []string) error {
	service, options, setupError := builder.prepare(command, arguments)
	if setupError != nil {
		return setupError
	}

	pullError := service.Pull(command.Context(), options)
	if pullError != nil {
		return fmt.Errorf(pullExecutionErrorTemplateConstant, pullError)
	}

	return nil
}

func (builder *CommandBuilder) runFetch(command *cobra.Command, arguments []string) error {
	service, options, setupError := builder.prepare(command, arguments)
	if setupError != nil {
		return setupError
	}

	fetchError := service.Fetch(command.Context(), options)
	if fetchError != nil {
		return fmt.Errorf(fetchExecutionErrorTemplateConstant, fetchError)
	}

	return nil
}

func (builder *CommandBuilder) prepare(command *cobra.Command, arguments []string) (*Service, Options, error) {
	logger := shared.ResolveLogger(builder.LoggerProvider)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, Options{}, executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return nil, Options{}, managerError
	}

	loadedCatalogue, catalogueError := shared.ResolveCatalogue(builder.CatalogueProvider)
	if catalogueError != nil {
		return nil, Options{}, catalogueError
	}

	service, serviceError := NewService(Dependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return nil, Options{}, serviceError
	}

	options := Options{Catalogue: loadedCatalogue, Pattern: patternArgument(arguments)}
	return service, options, nil
}

func patternArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
