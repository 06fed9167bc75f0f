package catalogue

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	entrySeparatorConstant                   = " = "
	prefixKeyConstant                        = "prefix"
	headerCommentConstant                    = "# List of git repositories managed by git-cat"
	commentPrefixConstant                    = "#"
	renderEntryTemplateConstant              = "%-*s = %s\n"
	renderPrefixTemplateConstant             = "prefix = %s\n"
	duplicateEntryErrorTemplateConstant      = "repository %s is already catalogued as %s"
	unknownEntryErrorTemplateConstant        = "%s is not catalogued"
	invalidPatternErrorTemplateConstant      = "invalid repository pattern %q: %w"
	catalogueReadErrorTemplateConstant       = "failed to read catalogue: %w"
	duplicateParsedNameErrorTemplateConstant = "catalogue lists %s more than once"
	newlineConstant                          = "\n"
)

// Entry associates a catalogued directory name with its remote git URL.
type Entry struct {
	Name      string
	RemoteURL string
}

// Catalogue holds the prefix directory and the catalogued repositories.
type Catalogue struct {
	Prefix  string
	Entries []Entry
}

// Parse reads catalogue lines from the supplied reader. Lines without the
// name/url separator are ignored; a prefix line updates the catalogue prefix.
func Parse(catalogueReader io.Reader) (Catalogue, error) {
	parsedCatalogue := Catalogue{}
	seenNames := map[string]struct{}{}

	lineScanner := bufio.NewScanner(catalogueReader)
	for lineScanner.Scan() {
		catalogueLine := strings.TrimSpace(lineScanner.Text())
		if len(catalogueLine) == 0 || strings.HasPrefix(catalogueLine, commentPrefixConstant) {
			continue
		}

		separatorIndex := strings.Index(catalogueLine, entrySeparatorConstant)
		if separatorIndex < 0 {
			continue
		}

		entryName := strings.TrimSpace(catalogueLine[:separatorIndex])
		entryValue := strings.TrimSpace(catalogueLine[separatorIndex+len(entrySeparatorConstant):])
		if len(entryName) == 0 || len(entryValue) == 0 {
			continue
		}

		if strings.EqualFold(entryName, prefixKeyConstant) {
			parsedCatalogue.Prefix = entryValue
			continue
		}

		if _, alreadySeen := seenNames[entryName]; alreadySeen {
			return Catalogue{}, fmt.Errorf(duplicateParsedNameErrorTemplateConstant, entryName)
		}
		seenNames[entryName] = struct{}{}

		parsedCatalogue.Entries = append(parsedCatalogue.Entries, Entry{Name: entryName, RemoteURL: entryValue})
	}

	scanError := lineScanner.Err()
	if scanError != nil {
		return Catalogue{}, fmt.Errorf(catalogueReadErrorTemplateConstant, scanError)
	}

	return parsedCatalogue, nil
}

// Render produces the canonical textual form of the catalogue: a header
// comment, the prefix when it differs from defaultPrefix, and the entries
// sorted by name with aligned separators.
func (currentCatalogue Catalogue) Render(defaultPrefix string) string {
	renderedCatalogue := strings.Builder{}
	renderedCatalogue.WriteString(headerCommentConstant)
	renderedCatalogue.WriteString(newlineConstant)

	if len(currentCatalogue.Prefix) > 0 && currentCatalogue.Prefix != defaultPrefix {
		renderedCatalogue.WriteString(fmt.Sprintf(renderPrefixTemplateConstant, currentCatalogue.Prefix))
	}

	sortedEntries := make([]Entry, len(currentCatalogue.Entries))
	copy(sortedEntries, currentCatalogue.Entries)
	sort.Slice(sortedEntries, func(firstIndex, secondIndex int) bool {
		return sortedEntries[firstIndex].Name < sortedEntries[secondIndex].Name
	})

	longestNameLength := 0
	for _, catalogueEntry := range sortedEntries {
		if len(catalogueEntry.Name) > longestNameLength {
			longestNameLength = len(catalogueEntry.Name)
		}
	}

	for _, catalogueEntry := range sortedEntries {
		renderedCatalogue.WriteString(fmt.Sprintf(renderEntryTemplateConstant, longestNameLength, catalogueEntry.Name, catalogueEntry.RemoteURL))
	}

	return renderedCatalogue.String()
}

// Add appends a repository to the catalogue, rejecting duplicate names.
func (currentCatalogue *Catalogue) Add(repositoryName string, remoteURL string) error {
	for _, catalogueEntry := range currentCatalogue.Entries {
		if catalogueEntry.Name == repositoryName {
			return fmt.Errorf(duplicateEntryErrorTemplateConstant, repositoryName, catalogueEntry.RemoteURL)
		}
	}

	currentCatalogue.Entries = append(currentCatalogue.Entries, Entry{Name: repositoryName, RemoteURL: remoteURL})
	return nil
}

// Remove deletes a repository from the catalogue by name.
func (currentCatalogue *Catalogue) Remove(repositoryName string) error {
	for entryIndex, catalogueEntry := range currentCatalogue.Entries {
		if catalogueEntry.Name == repositoryName {
			currentCatalogue.Entries = append(currentCatalogue.Entries[:entryIndex], currentCatalogue.Entries[entryIndex+1:]...)
			return nil
		}
	}

	return fmt.Errorf(unknownEntryErrorTemplateConstant, repositoryName)
}

// Lookup returns the entry catalogued under the supplied name.
func (currentCatalogue Catalogue) Lookup(repositoryName string) (Entry, bool) {
	for _, catalogueEntry := range currentCatalogue.Entries {
		if catalogueEntry.Name == repositoryName {
			return catalogueEntry, true
		}
	}

	return Entry{}, false
}

// Names lists the catalogued repository names sorted alphabetically.
func (currentCatalogue Catalogue) Names() []string {
	repositoryNames := make([]string, 0, len(currentCatalogue.Entries))
	for _, catalogueEntry := range currentCatalogue.Entries {
		repositoryNames = append(repositoryNames, catalogueEntry.Name)
	}
	sort.Strings(repositoryNames)
	return repositoryNames
}

// Select filters the entries whose name matches the supplied regular
// expression pattern, sorted by name. An empty pattern selects every entry.
func (currentCatalogue Catalogue) Select(namePattern string) ([]Entry, error) {
	compiledPattern, compileError := regexp.Compile(namePattern)
	if compileError != nil {
		return nil, fmt.Errorf(invalidPatternErrorTemplateConstant, namePattern, compileError)
	}

	selectedEntries := make([]Entry, 0, len(currentCatalogue.Entries))
	for _, catalogueEntry := range currentCatalogue.Entries {
		if compiledPattern.MatchString(catalogueEntry.Name) {
			selectedEntries = append(selectedEntries, catalogueEntry)
		}
	}

	sort.Slice(selectedEntries, func(firstIndex, secondIndex int) bool {
		return selectedEntries[firstIndex].Name < selectedEntries[secondIndex].Name
	})

	return selectedEntries, nil
}

// ExpandPath resolves a catalogued name to an absolute directory path. Names
// that are already absolute pass through untouched.
func (currentCatalogue Catalogue) ExpandPath(repositoryName string) string {
	if filepath.IsAbs(repositoryName) {
		return repositoryName
	}

	return filepath.Join(currentCatalogue.Prefix, repositoryName)
}

// ShortPath strips the catalogue prefix from an absolute directory path.
func (currentCatalogue Catalogue) ShortPath(directoryPath string) string {
	if len(currentCatalogue.Prefix) == 0 {
		return directoryPath
	}

	prefixWithSeparator := currentCatalogue.Prefix + string(filepath.Separator)
	if strings.HasPrefix(directoryPath, prefixWithSeparator) {
		return strings.TrimPrefix(directoryPath, prefixWithSeparator)
	}

	return directoryPath
}
