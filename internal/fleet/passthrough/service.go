// Package passthrough runs an arbitrary git command in every catalogued
// repository.
package passthrough

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
	argumentsMissingMessageConstant         = "git arguments are required"
	argumentSeparatorConstant               = " "
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrNoArguments indicates the caller supplied no git arguments to run.
var ErrNoArguments = errors.New(argumentsMissingMessageConstant)

// Dependencies enumerates the collaborators required by the passthrough service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one passthrough run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
	Arguments []string
}

// Service executes one git invocation per installed repository and prints the output.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles a passthrough Service.
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

// Run executes the configured git arguments in every installed repository.
func (service *Service) Run(executionContext context.Context, options Options) error {
	if len(options.Arguments) == 0 {
		return ErrNoArguments
	}

	selectedNames, selectError := shared.SelectedNames(options.Catalogue, options.Pattern)
	if selectError != nil {
		return selectError
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	return shared.ForEachRepository(executionContext, options.Catalogue, options.Pattern, service.repositoryManager, reportWriter, func(visit shared.RepositoryVisit) error {
		executionResult, runError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        options.Arguments,
			WorkingDirectory: visit.RepositoryPath,
		})
		if runError != nil {
			return runError
		}

		reportWriter.Line(visit.Entry.Name, strings.Join(options.Arguments, argumentSeparatorConstant))
		reportWriter.Detail(strings.TrimSpace(executionResult.StandardOutput))
		return nil
	})
}
