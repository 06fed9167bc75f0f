package catalogue

import (
	"errors"
	"fmt"
	"os"
)

const (
	catalogueOpenErrorTemplateConstant  = "unable to read catalogue file %s: %w"
	catalogueWriteErrorTemplateConstant = "unable to write catalogue file %s: %w"
	catalogueFilePermissionsConstant    = 0o644
)

// Store loads and saves catalogue files on disk.
type Store struct {
	locator *Locator
}

// NewStore constructs a Store resolving defaults through the supplied locator.
func NewStore(locator *Locator) *Store {
	resolvedLocator := locator
	if resolvedLocator == nil {
		resolvedLocator = NewLocator()
	}

	return &Store{locator: resolvedLocator}
}

// Load parses the catalogue file at the supplied path. The prefix defaults to
// the user home directory when the file does not set one.
func (store *Store) Load(cataloguePath string) (Catalogue, error) {
	catalogueFile, openError := os.Open(cataloguePath)
	if openError != nil {
		return Catalogue{}, fmt.Errorf(catalogueOpenErrorTemplateConstant, cataloguePath, openError)
	}
	defer catalogueFile.Close()

	loadedCatalogue, parseError := Parse(catalogueFile)
	if parseError != nil {
		return Catalogue{}, parseError
	}

	if len(loadedCatalogue.Prefix) == 0 {
		loadedCatalogue.Prefix = store.locator.DefaultPrefix()
	}

	return loadedCatalogue, nil
}

// LoadOrEmpty behaves like Load but treats a missing file as an empty
// catalogue so that the first add can create it.
func (store *Store) LoadOrEmpty(cataloguePath string) (Catalogue, error) {
	loadedCatalogue, loadError := store.Load(cataloguePath)
	if loadError != nil {
		if errors.Is(loadError, os.ErrNotExist) {
			return Catalogue{Prefix: store.locator.DefaultPrefix()}, nil
		}
		return Catalogue{}, loadError
	}

	return loadedCatalogue, nil
}

// Save writes the rendered catalogue to disk, replacing any previous content.
func (store *Store) Save(cataloguePath string, currentCatalogue Catalogue) error {
	renderedCatalogue := currentCatalogue.Render(store.locator.DefaultPrefix())
	writeError := os.WriteFile(cataloguePath, []byte(renderedCatalogue), catalogueFilePermissionsConstant)
	if writeError != nil {
		return fmt.Errorf(catalogueWriteErrorTemplateConstant, cataloguePath, writeError)
	}

	return nil
}
