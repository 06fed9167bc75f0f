package catalogue

import (
	"fmt"
	"os"
	"path/filepath"

	pathutils "github.com/temirov/gitcat/internal/utils/path"
)

const (
	dotfilesCatalogueDirectoryConstant = ".dotfiles/config"
	dotfilesCatalogueFileNameConstant  = "gitcatrc"
	homeCatalogueFileNameConstant      = ".gitcatrc"
	homeLookupErrorTemplateConstant    = "unable to determine home directory: %w"
)

// Locator resolves the catalogue file path from overrides and defaults.
type Locator struct {
	homeExpander *pathutils.HomeExpander
}

// NewLocator constructs a Locator using the operating system home lookup.
func NewLocator() *Locator {
	return NewLocatorWithExpander(nil)
}

// NewLocatorWithExpander constructs a Locator with a custom home expander.
func NewLocatorWithExpander(homeExpander *pathutils.HomeExpander) *Locator {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = pathutils.NewHomeExpander()
	}

	return &Locator{homeExpander: resolvedExpander}
}

// Resolve returns the catalogue file path. A non-empty override wins after
// tilde expansion; otherwise the dotfiles location is preferred when its
// directory exists, falling back to the home directory file.
func (locator *Locator) Resolve(overridePath string) (string, error) {
	if len(overridePath) > 0 {
		return locator.homeExpander.Expand(overridePath), nil
	}

	homeDirectory := locator.homeExpander.HomeDirectory()
	if len(homeDirectory) == 0 {
		return "", fmt.Errorf(homeLookupErrorTemplateConstant, os.ErrNotExist)
	}

	dotfilesDirectory := filepath.Join(homeDirectory, filepath.FromSlash(dotfilesCatalogueDirectoryConstant))
	directoryInformation, statError := os.Stat(dotfilesDirectory)
	if statError == nil && directoryInformation.IsDir() {
		return filepath.Join(dotfilesDirectory, dotfilesCatalogueFileNameConstant), nil
	}

	return filepath.Join(homeDirectory, homeCatalogueFileNameConstant), nil
}

// DefaultPrefix returns the directory catalogued names expand against when the
// catalogue file does not set one.
func (locator *Locator) DefaultPrefix() string {
	return locator.homeExpander.HomeDirectory()
}
