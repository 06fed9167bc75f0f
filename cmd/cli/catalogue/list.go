package catalogue

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/fleet/dependencies"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	listCommandUseConstant                = "ls [pattern]"
	listCommandShortDescriptionConstant   = "List catalogued repositories"
	listCommandLongDescriptionConstant    = "ls prints every catalogued repository with an = separator, or ! when the directory is missing or not a git repository."
	flagInstalledNameConstant             = "installed"
	flagInstalledDescriptionConstant      = "List only repositories that are installed"
	flagMissingNameConstant               = "missing"
	flagMissingDescriptionConstant        = "List only repositories that are not installed"
	installedSeparatorConstant            = "="
	missingSeparatorConstant              = "!"
	listLineTemplateConstant              = "%-*s %s %s\n"
	maximumListPositionalArgumentConstant = 1
)

// ListCommandBuilder assembles the ls command.
type ListCommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	HumanReadableLoggingProvider func() bool
	CatalogueProvider            shared.CatalogueProvider
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
}

// Build constructs the ls command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumListPositionalArgumentConstant),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagInstalledNameConstant, false, flagInstalledDescriptionConstant)
	command.Flags().Bool(flagMissingNameConstant, false, flagMissingDescriptionConstant)

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
	installedOnly, _ := command.Flags().GetBool(flagInstalledNameConstant)
	missingOnly, _ := command.Flags().GetBool(flagMissingNameConstant)

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

	pattern := ""
	if len(arguments) > 0 {
		pattern = arguments[0]
	}

	selectedEntries, selectError := loadedCatalogue.Select(pattern)
	if selectError != nil {
		return selectError
	}

	nameColumnWidth := 0
	for _, entry := range selectedEntries {
		if len(entry.Name) > nameColumnWidth {
			nameColumnWidth = len(entry.Name)
		}
	}

	executionContext := command.Context()
	output := command.OutOrStdout()

	for _, entry := range selectedEntries {
		repositoryPath := loadedCatalogue.ExpandPath(entry.Name)
		installed := repositoryManager.IsGitRepository(executionContext, repositoryPath)

		if installedOnly && !installed {
			continue
		}
		if missingOnly && installed {
			continue
		}

		separator := installedSeparatorConstant
		if !installed {
			separator = missingSeparatorConstant
		}

		fmt.Fprintf(output, listLineTemplateConstant, nameColumnWidth, entry.Name, separator, entry.RemoteURL)
	}

	return nil
}
