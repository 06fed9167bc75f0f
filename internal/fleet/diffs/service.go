// Package diffs shows pending working tree changes across catalogued
// repositories.
package diffs

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	gitDiffSubcommandConstant               = "diff"
	gitNoColorFlagConstant                  = "--no-color"
	gitHeadReferenceConstant                = "HEAD"
	upToDateMessageConstant                 = "up to date"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the diff service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one diff run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
}

// Service prints the diff against HEAD for every installed repository.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles a diff Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}

	return &Service{
		gitExecutor:       dependencies.GitExecutor,
		repositoryManager: dependencies.RepositoryManager,
		reporter:          reporter,
	}, nil
}

// Diff reports uncommitted changes against HEAD for every installed repository.
func (service *Service) Diff(executionContext context.Context, options Options) error {
	selectedNames, selectError := shared.SelectedNames(options.Catalogue, options.Pattern)
	if selectError != nil {
		return selectError
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	return shared.ForEachRepository(executionContext, options.Catalogue, options.Pattern, service.repositoryManager, reportWriter, func(visit shared.RepositoryVisit) error {
		executionResult, diffError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitDiffSubcommandConstant, gitNoColorFlagConstant, gitHeadReferenceConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if diffError != nil {
			return diffError
		}

		diffOutput := strings.TrimSpace(executionResult.StandardOutput)
		if len(diffOutput) == 0 {
			reportWriter.Line(visit.Entry.Name, upToDateMessageConstant)
			return nil
		}

		reportWriter.Block(visit.Entry.Name, diffOutput)
		return nil
	})
}
