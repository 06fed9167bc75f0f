// Package push commits outstanding changes and pushes catalogued repositories
// to their remotes.
package push

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	gitCommitSubcommandConstant             = "commit"
	gitPushSubcommandConstant               = "push"
	gitAllFlagConstant                      = "--all"
	gitMessageFlagConstant                  = "--message"
	gitPorcelainFlagConstant                = "--porcelain"
	gitDryRunFlagConstant                   = "--dry-run"
	gitFollowTagsFlagConstant               = "--follow-tags"
	commitMessageTemplateConstant           = "git cat: updating %s"
	changedFileSeparatorConstant            = ", "
	commitReportPrefixConstant              = "commit\n"
	pushedReportPrefixConstant              = "pushed\n"
	upToDateMessageConstant                 = "up to date"
	wouldPushMessageConstant                = "would push"
	upToDateProbeMarkerConstant             = "[up to date]"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the push service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one commit or push run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
	DryRun    bool
}

// Service commits and pushes installed catalogued repositories.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles a push Service.
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

// Commit records outstanding changes in every installed repository using a
// generated message listing the changed files.
func (service *Service) Commit(executionContext context.Context, options Options) error {
	return service.forEach(executionContext, options, func(visit shared.RepositoryVisit, reportWriter *shared.ReportWriter) error {
		committed, commitOutput, commitError := service.commitRepository(executionContext, visit.RepositoryPath, options.DryRun)
		if commitError != nil {
			return commitError
		}

		if committed && len(commitOutput) > 0 {
			reportWriter.Block(visit.Entry.Name, commitReportPrefixConstant+commitOutput)
		}

		return nil
	})
}

// Push commits outstanding changes, probes the remote with a dry-run push, and
// pushes repositories that are ahead of their remotes.
func (service *Service) Push(executionContext context.Context, options Options) error {
	return service.forEach(executionContext, options, func(visit shared.RepositoryVisit, reportWriter *shared.ReportWriter) error {
		committed, commitOutput, commitError := service.commitRepository(executionContext, visit.RepositoryPath, options.DryRun)
		if commitError != nil {
			return commitError
		}
		if committed && len(commitOutput) > 0 {
			reportWriter.Block(visit.Entry.Name, commitReportPrefixConstant+commitOutput)
		}

		probeResult, probeError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitPushSubcommandConstant, gitPorcelainFlagConstant, gitFollowTagsFlagConstant, gitDryRunFlagConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if probeError != nil {
			return probeError
		}

		if strings.Contains(probeResult.StandardOutput, upToDateProbeMarkerConstant) {
			reportWriter.Line(visit.Entry.Name, upToDateMessageConstant)
			return nil
		}

		if options.DryRun {
			reportWriter.Line(visit.Entry.Name, wouldPushMessageConstant)
			return nil
		}

		pushResult, pushError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitPushSubcommandConstant, gitPorcelainFlagConstant, gitFollowTagsFlagConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if pushError != nil {
			return pushError
		}

		reportWriter.Block(visit.Entry.Name, pushedReportPrefixConstant+strings.TrimSpace(pushResult.StandardOutput))
		return nil
	})
}

func (service *Service) commitRepository(executionContext context.Context, repositoryPath string, dryRun bool) (bool, string, error) {
	worktreeClean, cleanError := service.repositoryManager.CheckCleanWorktree(executionContext, repositoryPath)
	if cleanError != nil {
		return false, "", cleanError
	}
	if worktreeClean {
		return false, "", nil
	}

	changedFiles, listError := service.repositoryManager.ListChangedFiles(executionContext, repositoryPath)
	if listError != nil {
		return false, "", listError
	}
	if len(changedFiles) == 0 {
		return false, "", nil
	}

	commitMessage := fmt.Sprintf(commitMessageTemplateConstant, strings.Join(changedFiles, changedFileSeparatorConstant))
	commitArguments := []string{gitCommitSubcommandConstant, gitAllFlagConstant, gitMessageFlagConstant, commitMessage}
	if dryRun {
		commitArguments = append(commitArguments, gitPorcelainFlagConstant, gitDryRunFlagConstant)
	}

	commitResult, commitError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        commitArguments,
		WorkingDirectory: repositoryPath,
	})
	if commitError != nil {
		return false, "", commitError
	}

	return true, strings.TrimSpace(commitResult.StandardOutput), nil
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
