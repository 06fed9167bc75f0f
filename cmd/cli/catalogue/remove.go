package catalogue

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	removeCommandUseConstant                = "remove [path]"
	removeCommandShortDescriptionConstant   = "Remove the repository at the given path from the catalogue"
	removeCommandLongDescriptionConstant    = "remove drops the catalogue entry for the given path; --delete also removes the directory tree."
	removedMessageTemplateConstant          = "removed %s\n"
	deletedMessageTemplateConstant          = "deleted %s\n"
	flagDeleteNameConstant                  = "delete"
	flagDeleteDescriptionConstant           = "Also delete the repository directory"
	absolutePathErrorTemplateConstant       = "unable to resolve %s: %w"
	deleteErrorTemplateConstant             = "unable to delete %s: %w"
	maximumRemovePositionalArgumentConstant = 1
)

// RemoveCommandBuilder assembles the remove command.
type RemoveCommandBuilder struct {
	CataloguePathProvider func() (string, error)
	Store                 *catalogue.Store
	FileSystem            shared.FileSystem
}

// Build constructs the remove command.
func (builder *RemoveCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   removeCommandUseConstant,
		Short: removeCommandShortDescriptionConstant,
		Long:  removeCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumRemovePositionalArgumentConstant),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagDeleteNameConstant, false, flagDeleteDescriptionConstant)

	return command, nil
}

func (builder *RemoveCommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryPath := currentDirectoryPathConstant
	if len(arguments) > 0 {
		repositoryPath = arguments[0]
	}

	deleteDirectory, _ := command.Flags().GetBool(flagDeleteNameConstant)

	absolutePath, absoluteError := filepath.Abs(repositoryPath)
	if absoluteError != nil {
		return fmt.Errorf(absolutePathErrorTemplateConstant, repositoryPath, absoluteError)
	}

	cataloguePath, store, pathError := resolveCatalogueStore(builder.CataloguePathProvider, builder.Store)
	if pathError != nil {
		return pathError
	}

	loadedCatalogue, loadError := store.Load(cataloguePath)
	if loadError != nil {
		return loadError
	}

	repositoryName := loadedCatalogue.ShortPath(absolutePath)
	if removeError := loadedCatalogue.Remove(repositoryName); removeError != nil {
		return removeError
	}

	if saveError := store.Save(cataloguePath, loadedCatalogue); saveError != nil {
		return saveError
	}

	fmt.Fprintf(command.OutOrStdout(), removedMessageTemplateConstant, repositoryName)

	if deleteDirectory {
		fileSystem := builder.FileSystem
		if fileSystem == nil {
			fileSystem = shared.OSFileSystem{}
		}
		if deleteError := fileSystem.RemoveAll(absolutePath); deleteError != nil {
			return fmt.Errorf(deleteErrorTemplateConstant, absolutePath, deleteError)
		}
		fmt.Fprintf(command.OutOrStdout(), deletedMessageTemplateConstant, absolutePath)
	}

	return nil
}
