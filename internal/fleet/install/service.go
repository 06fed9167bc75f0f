// Package install clones catalogued repositories that are missing locally.
package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	gitCloneSubcommandConstant              = "clone"
	gitQuietFlagConstant                    = "--quiet"
	installingMessageConstant               = "installing"
	wouldInstallMessageConstant             = "would install"
	alreadyInstalledMessageConstant         = "already installed"
	notARepositoryMessageConstant           = "exists but is not a git repository"
	parentDirectoryPermissionsConstant      = 0o755
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the install service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	FileSystem        shared.FileSystem
	Reporter          shared.Reporter
}

// Options configures one install run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
	DryRun    bool
}

// Service clones catalogued repositories into their expanded directories.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	fileSystem        shared.FileSystem
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles an install Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = shared.OSFileSystem{}
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}

	return &Service{
		gitExecutor:       dependencies.GitExecutor,
		repositoryManager: dependencies.RepositoryManager,
		fileSystem:        fileSystem,
		reporter:          reporter,
	}, nil
}

// Install clones every selected catalogue entry whose directory does not
// exist. Directories that exist without being git repositories are reported.
func (service *Service) Install(executionContext context.Context, options Options) error {
	selectedEntries, selectError := options.Catalogue.Select(options.Pattern)
	if selectError != nil {
		return selectError
	}

	selectedNames := make([]string, 0, len(selectedEntries))
	for _, selectedEntry := range selectedEntries {
		selectedNames = append(selectedNames, selectedEntry.Name)
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	for _, selectedEntry := range selectedEntries {
		repositoryPath := options.Catalogue.ExpandPath(selectedEntry.Name)

		_, statError := service.fileSystem.Stat(repositoryPath)
		if statError == nil {
			if service.repositoryManager.IsGitRepository(executionContext, repositoryPath) {
				reportWriter.Line(selectedEntry.Name, alreadyInstalledMessageConstant)
			} else {
				reportWriter.Line(selectedEntry.Name, notARepositoryMessageConstant)
			}
			continue
		}
		if !os.IsNotExist(statError) {
			reportWriter.Line(selectedEntry.Name, statError.Error())
			continue
		}

		if options.DryRun {
			reportWriter.Line(selectedEntry.Name, wouldInstallMessageConstant)
			continue
		}

		reportWriter.Line(selectedEntry.Name, installingMessageConstant)
		cloneError := service.cloneRepository(executionContext, selectedEntry, repositoryPath)
		if cloneError != nil {
			reportWriter.Line(selectedEntry.Name, cloneError.Error())
		}
	}

	return nil
}

func (service *Service) cloneRepository(executionContext context.Context, entry catalogue.Entry, repositoryPath string) error {
	parentDirectory := filepath.Dir(repositoryPath)
	mkdirError := service.fileSystem.MkdirAll(parentDirectory, parentDirectoryPermissionsConstant)
	if mkdirError != nil {
		return mkdirError
	}

	_, cloneError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCloneSubcommandConstant, gitQuietFlagConstant, entry.RemoteURL, filepath.Base(repositoryPath)},
		WorkingDirectory: parentDirectory,
	})

	return cloneError
}
