// Package status summarizes the working tree and tracking state of
// catalogued repositories.
package status

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	gitRemoteSubcommandConstant             = "remote"
	gitRemoteUpdateArgumentConstant         = "update"
	gitStatusSubcommandConstant             = "status"
	gitPorcelainFlagConstant                = "--porcelain"
	gitShortFlagConstant                    = "--short"
	gitBranchFlagConstant                   = "--branch"
	gitDiffSubcommandConstant               = "diff"
	gitShortStatFlagConstant                = "--shortstat"
	gitNoColorFlagConstant                  = "--no-color"
	branchHeaderPrefixConstant              = "##"
	trackingStatePatternConstant            = `\[((ahead|behind) [0-9]+(, )?)+\]`
	changedFilesPatternConstant             = `([0-9]+ file(?:s|))(?: changed)`
	trackingStateTrimCutsetConstant         = "[]"
	uncommittedChangesPrefixConstant        = "uncommitted changes in "
	summarySeparatorConstant                = ", "
	upToDateMessageConstant                 = "up to date"
	lineSeparatorConstant                   = "\n"
)

var (
	trackingStateExpression = regexp.MustCompile(trackingStatePatternConstant)
	changedFilesExpression  = regexp.MustCompile(changedFilesPatternConstant)
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Dependencies enumerates the collaborators required by the status service.
type Dependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures one status run.
type Options struct {
	Catalogue catalogue.Catalogue
	Pattern   string
	Local     bool
}

// Service reports the divergence and dirtiness of every installed repository.
type Service struct {
	gitExecutor       shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
}

// NewService validates dependencies and assembles a status Service.
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

// Status reports tracking divergence and uncommitted changes for every installed repository.
func (service *Service) Status(executionContext context.Context, options Options) error {
	selectedNames, selectError := shared.SelectedNames(options.Catalogue, options.Pattern)
	if selectError != nil {
		return selectError
	}
	reportWriter := shared.NewReportWriter(service.reporter, selectedNames)

	return shared.ForEachRepository(executionContext, options.Catalogue, options.Pattern, service.repositoryManager, reportWriter, func(visit shared.RepositoryVisit) error {
		return service.reportRepositoryStatus(executionContext, visit, reportWriter, options.Local)
	})
}

func (service *Service) reportRepositoryStatus(executionContext context.Context, visit shared.RepositoryVisit, reportWriter *shared.ReportWriter, local bool) error {
	if !local {
		_, updateError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteUpdateArgumentConstant},
			WorkingDirectory: visit.RepositoryPath,
		})
		if updateError != nil {
			return updateError
		}
	}

	statusResult, statusError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant, gitShortFlagConstant, gitBranchFlagConstant},
		WorkingDirectory: visit.RepositoryPath,
	})
	if statusError != nil {
		return statusError
	}

	trackingState, detailLines := splitStatusOutput(statusResult.StandardOutput)

	changeSummary, diffError := service.summarizeUncommittedChanges(executionContext, visit.RepositoryPath)
	if diffError != nil {
		return diffError
	}

	summaryParts := make([]string, 0, 2)
	if len(trackingState) > 0 {
		summaryParts = append(summaryParts, trackingState)
	}
	if len(changeSummary) > 0 {
		summaryParts = append(summaryParts, changeSummary)
	}
	summary := strings.Join(summaryParts, summarySeparatorConstant)

	switch {
	case len(detailLines) > 0 && len(summary) > 0:
		reportWriter.Block(visit.Entry.Name, summary+lineSeparatorConstant+detailLines)
	case len(detailLines) > 0:
		reportWriter.Block(visit.Entry.Name, detailLines)
	case len(summary) > 0:
		reportWriter.Line(visit.Entry.Name, summary)
	default:
		reportWriter.Line(visit.Entry.Name, upToDateMessageConstant)
	}

	return nil
}

// splitStatusOutput separates the branch header from the porcelain entry
// lines and extracts the ahead/behind annotation from the header.
func splitStatusOutput(statusOutput string) (trackingState string, detailLines string) {
	lines := strings.Split(strings.TrimSpace(statusOutput), lineSeparatorConstant)
	remaining := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, branchHeaderPrefixConstant) {
			annotation := trackingStateExpression.FindString(trimmedLine)
			trackingState = strings.Trim(annotation, trackingStateTrimCutsetConstant)
			continue
		}
		remaining = append(remaining, line)
	}
	return trackingState, strings.Join(remaining, lineSeparatorConstant)
}

func (service *Service) summarizeUncommittedChanges(executionContext context.Context, repositoryPath string) (string, error) {
	diffResult, diffError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitShortStatFlagConstant, gitNoColorFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if diffError != nil {
		return "", diffError
	}

	matches := changedFilesExpression.FindStringSubmatch(diffResult.StandardOutput)
	if matches == nil {
		return "", nil
	}
	return uncommittedChangesPrefixConstant + matches[1], nil
}
