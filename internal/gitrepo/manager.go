package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitcat/internal/execshell"
)

const (
	gitExecutorNotConfiguredMessageConstant = "git executor not configured"
	revParseSubcommandConstant              = "rev-parse"
	insideWorkTreeFlagConstant              = "--is-inside-work-tree"
	showTopLevelFlagConstant                = "--show-toplevel"
	headReferenceConstant                   = "HEAD"
	statusSubcommandConstant                = "status"
	porcelainFlagConstant                   = "--porcelain"
	remoteSubcommandConstant                = "remote"
	remoteGetURLSubcommandConstant          = "get-url"
	remotePushFlagConstant                  = "--push"
	originRemoteNameConstant                = "origin"
	diffIndexSubcommandConstant             = "diff-index"
	nameOnlyFlagConstant                    = "--name-only"
	insideWorkTreeTrueOutputConstant        = "true"
)

// ErrGitExecutorNotConfigured indicates a RepositoryManager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// GitExecutor runs git commands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager inspects local git repositories through a GitExecutor.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager validates the executor and assembles a RepositoryManager.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// IsGitRepository reports whether the supplied directory sits inside a git work tree.
func (manager *RepositoryManager) IsGitRepository(executionContext context.Context, repositoryPath string) bool {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, insideWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false
	}

	return strings.TrimSpace(executionResult.StandardOutput) == insideWorkTreeTrueOutputConstant
}

// CheckCleanWorktree reports whether the repository has no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{statusSubcommandConstant, porcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetRemoteURL resolves the push URL of the origin remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteGetURLSubcommandConstant, remotePushFlagConstant, originRemoteNameConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ListChangedFiles lists the paths with uncommitted modifications relative to HEAD.
func (manager *RepositoryManager) ListChangedFiles(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{diffIndexSubcommandConstant, nameOnlyFlagConstant, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	trimmedOutput := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedOutput) == 0 {
		return nil, nil
	}

	changedFiles := strings.Split(trimmedOutput, "\n")
	for fileIndex := range changedFiles {
		changedFiles[fileIndex] = strings.TrimSpace(changedFiles[fileIndex])
	}

	return changedFiles, nil
}

// TopLevelDirectory resolves the repository root containing the supplied directory.
func (manager *RepositoryManager) TopLevelDirectory(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, showTopLevelFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}
