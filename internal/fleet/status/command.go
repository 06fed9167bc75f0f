package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	commandUseConstant                    = "status [pattern]"
	commandShortDescriptionConstant       = "Summarize tracking state and uncommitted changes"
	commandLongDescriptionConstant        = "status updates remote tracking information and reports ahead/behind counts and uncommitted changes for every installed catalogued repository."
	commandExecutionErrorTemplateConstant = "status failed: %w"
	flagLocalNameConstant                 = "local"
	flagLocalDescriptionConstant          = "Skip contacting remotes before summarizing repository state"
	maximumPositionalArgumentsConstant    = 1
)

// CommandBuilder assembles the status command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagLocalNameConstant, false, flagLocalDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	local := configuration.Local
	if command.Flags().Changed(flagLocalNameConstant) {
		local, _ = command.Flags().GetBool(flagLocalNameConstant)
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

	statusOptions := Options{
		Catalogue: loadedCatalogue,
		Pattern:   patternArgument(arguments),
		Local:     local,
	}

	statusError := service.Status(command.Context(), statusOptions)
	if statusError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, statusError)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func patternArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
