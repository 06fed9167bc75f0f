package shared

import (
	"context"

	"github.com/temirov/gitcat/internal/catalogue"
)

const notInstalledMessageConstant = "not installed"

// RepositoryVisit carries one catalogued repository through a fleet iteration.
type RepositoryVisit struct {
	Entry          catalogue.Entry
	RepositoryPath string
}

// VisitFunc handles one installed repository during a fleet iteration.
type VisitFunc func(visit RepositoryVisit) error

// ForEachRepository applies the visit function to every selected catalogue
// entry whose directory is a git repository, in name order. Entries that are
// not installed get a report line, and a visit error is reported without
// stopping the iteration.
func ForEachRepository(executionContext context.Context, currentCatalogue catalogue.Catalogue, namePattern string, repositoryManager GitRepositoryManager, reportWriter *ReportWriter, visit VisitFunc) error {
	selectedEntries, selectError := currentCatalogue.Select(namePattern)
	if selectError != nil {
		return selectError
	}

	for _, selectedEntry := range selectedEntries {
		repositoryPath := currentCatalogue.ExpandPath(selectedEntry.Name)
		if !repositoryManager.IsGitRepository(executionContext, repositoryPath) {
			reportWriter.Line(selectedEntry.Name, notInstalledMessageConstant)
			continue
		}

		visitError := visit(RepositoryVisit{Entry: selectedEntry, RepositoryPath: repositoryPath})
		if visitError != nil {
			reportWriter.Line(selectedEntry.Name, visitError.Error())
		}
	}

	return nil
}

// SelectedNames lists the names chosen by the pattern for report alignment.
func SelectedNames(currentCatalogue catalogue.Catalogue, namePattern string) ([]string, error) {
	selectedEntries, selectError := currentCatalogue.Select(namePattern)
	if selectError != nil {
		return nil, selectError
	}

	selectedNames := make([]string, 0, len(selectedEntries))
	for _, selectedEntry := range selectedEntries {
		selectedNames = append(selectedNames, selectedEntry.Name)
	}

	return selectedNames, nil
}
