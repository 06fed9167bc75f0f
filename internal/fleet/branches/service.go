// Package branches lists the local branches of catalogued repositories.
package branches

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
	gitBranchSubcommandConstant             = "branch"
	gitVerboseFlagConstant                  = "--verbose"
	lineTrimCutsetConstant                  = "\n"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the branch service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one branch listing run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
}

// Service lists local branches with their head commits for every installed repository.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles a branch Service.
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

// List prints the verbose branch listing of every installed repository.
func (service *Service) List(executionContext context.Context, options Options) error {
	selectedNames, selectError := shared.SelectedNames(options.Catalogue, options.Pattern)
	if selectError != nil {
		return selectError
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	return shared.ForEachRepository(executionContext, options.Catalogue, options.Pattern, service.repositoryManager, reportWriter, func(visit shared.RepositoryVisit) error {
		executionResult, branchError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitBranchSubcommandConstant, gitVerboseFlagConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if branchError != nil {
			return branchError
		}

		reportWriter.Block(visit.Entry.Name, strings.TrimRight(executionResult.StandardOutput, lineTrimCutsetConstant))
		return nil
	})
}
