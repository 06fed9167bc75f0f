// Package update synchronizes catalogued repositories with their remotes
// through git pull and git fetch.
package update

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
	gitPullSubcommandConstant               = "pull"
	gitFetchSubcommandConstant              = "fetch"
	gitQuietFlagConstant                    = "-q"
	gitProgressFlagConstant                 = "--progress"
	gitFastForwardOnlyFlagConstant          = "--ff-only"
	gitPruneFlagConstant                    = "--prune"
	alreadyUpToDateMessageConstant          = "already up to date"
	pullingMessagePrefixConstant            = "pulling\n"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the update service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one update run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
}

// Service pulls or fetches every installed catalogued repository.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles an update Service.
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

// Pull fast-forwards every installed repository from its remote.
func (service *Service) Pull(executionContext context.Context, options Options) error {
	return service.forEach(executionContext, options, func(visit shared.RepositoryVisit, reportWriter *shared.ReportWriter) error {
		executionResult, pullError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitPullSubcommandConstant, gitQuietFlagConstant, gitProgressFlagConstant, gitFastForwardOnlyFlagConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if pullError != nil {
			return pullError
		}

		pullOutput := strings.TrimSpace(executionResult.StandardOutput)
		if len(pullOutput) == 0 {
			reportWriter.Line(visit.Entry.Name, alreadyUpToDateMessageConstant)
			return nil
		}

		reportWriter.Block(visit.Entry.Name, pullingMessagePrefixConstant+pullOutput)
		return nil
	})
}

// Fetch updates remote tracking branches for every installed repository.
func (service *Service) Fetch(executionContext context.Context, options Options) error {
	return service.forEach(executionContext, options, func(visit shared.RepositoryVisit, reportWriter *shared.ReportWriter) error {
		executionResult, fetchError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitFetchSubcommandConstant, gitQuietFlagConstant, gitProgressFlagConstant, gitPruneFlagConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if fetchError != nil {
			return fetchError
		}

		fetchOutput := strings.TrimSpace(executionResult.StandardOutput)
		if len(fetchOutput) == 0 {
			reportWriter.Line(visit.Entry.Name, alreadyUpToDateMessageConstant)
			return nil
		}

		reportWriter.Block(visit.Entry.Name, fetchOutput)
		return nil
	})
}

func (service *Service) forEach(executionContext context.Context, options Options, visit func(shared.RepositoryVisit, *shared.ReportWriter) error) error {
	selectedNames, selectError := shared.SelectedNames(options.Catalogue, options.Pattern)
	if selectError != nil {
		return selectError
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	return shared.ForEachRepository(executionContext, options.Catalogue, options.Pattern, service.repositoryManager, reportWriter, func(repositoryVisit shared.RepositoryVisit) error {
		return visit(repositoryVisit, reportWriter)
	})
}
