package push

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	pushCommandUseConstant               = "push [pattern]"
	pushCommandShortDescriptionConstant  = "Commit and push installed repositories to their remotes"
	pushCommandLongDescriptionConstant   = "push commits outstanding changes with a generated message and pushes repositories that are ahead of their remotes."
	pushExecutionErrorTemplateConstant   = "push failed: %w"
	commitCommandUseConstant             = "commit [pattern]"
	commitCommandShortDescription        = "Commit outstanding changes in installed repositories"
	commitCommandLongDescription         = "commit records outstanding changes in every installed catalogued repository using a generated message listing the changed files."
	commitExecutionErrorTemplateConstant = "commit failed: %w"
	flagDryRunNameConstant               = "dry-run"
	flagDryRunDescriptionConstant        = "Preview commits and pushes without changing anything"
	maximumPositionalArgumentsConstant   = 1
)

// CommandBuilder assembles the push and commit commands.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	ConfigurationProvider        func() CommandConfiguration
}

// BuildPush constructs the push command.
func (builder *CommandBuilder) BuildPush() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		Long:  pushCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.runPush,
	}

	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

// BuildCommit constructs the commit command.
func (builder *CommandBuilder) BuildCommit() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commitCommandUseConstant,
		Short: commitCommandShortDescription,
		Long:  commitCommandLongDescription,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.runCommit,
	}

	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) runPush(command *cobra.Command, arguments []string) error {
	service, options, setupError := builder.prepare(command, arguments)
	if setupError != nil {
		return setupError
	}

	pushError := service.Push(command.Context(), options)
	if pushError != nil {
		return fmt.Errorf(pushExecutionErrorTemplateConstant, pushError)
	}

	return nil
}

func (builder *CommandBuilder) runCommit(command *cobra.Command, arguments []string) error {
	service, options, setupError := builder.prepare(command, arguments)
	if setupError != nil {
		return setupError
	}

	commitError := service.Commit(command.Context(), options)
	if commitError != nil {
		return fmt.Errorf(commitExecutionErrorTemplateConstant, commitError)
	}

	return nil
}

func (builder *CommandBuilder) prepare(command *cobra.Command, arguments []string) (*Service, Options, error) {
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

	options := Options{
		Catalogue: loadedCatalogue,
		Pattern:   patternArgument(arguments),
		DryRun:    dryRun,
	}

	return service, options, nil
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
