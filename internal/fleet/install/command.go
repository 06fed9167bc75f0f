package install

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	commandUseConstant                    = "install [pattern]"
	commandShortDescriptionConstant       = "Clone catalogued repositories that are missing locally"
	commandLongDescriptionConstant        = "install clones every catalogued repository whose directory does not exist, creating parent directories as needed."
	commandExecutionErrorTemplateConstant = "install failed: %w"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Report repositories that would be cloned without cloning them"
	maximumPositionalArgumentsConstant    = 1
)

// CommandBuilder assembles the install command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	FileSystem                   shared.FileSystem
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the install command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	dryRun := configuration.DryRun
	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
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
		FileSystem:        builder.FileSystem,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	installOptions := Options{
		Catalogue: loadedCatalogue,
		Pattern:   patternArgument(arguments),
		DryRun:    dryRun,
	}

	installError := service.Install(command.Context(), installOptions)
	if installError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, installError)
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
