package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/gitrepo"
)

const (
	testRepositoryPathConstant         = "/home/tester/code/dotfiles"
	testRemoteURLOutputConstant        = "git@github.com:example/dotfiles.git\n"
	testTopLevelOutputConstant         = "/home/tester/code/dotfiles\n"
	testChangedFilesOutputConstant     = "README.md\nconfig/settings.yaml\n"
	testExecutorFailureMessageConstant = "git binary missing"
)

type stubGitExecutor struct {
	executionResult execshell.ExecutionResult
	executionError  error
	recordedDetails  []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return executor.executionResult, executor.executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	_, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestIsGitRepository(testInstance *testing.T) {
	testCases := []struct {
		name           string
		executor       *stubGitExecutor
		expectedResult bool
	}{
		{
			name:           "inside_work_tree",
			executor:       &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "true\n"}},
			expectedResult: true,
		},
		{
			name:           "not_a_repository",
			executor:       &stubGitExecutor{executionError: errors.New(testExecutorFailureMessageConstant)},
			expectedResult: false,
		},
		{
			name:           "unexpected_output",
			executor:       &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "false\n"}},
			expectedResult: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			repositoryManager, creationError := gitrepo.NewRepositoryManager(testCase.executor)
			require.NoError(subtestInstance, creationError)

			insideRepository := repositoryManager.IsGitRepository(context.Background(), testRepositoryPathConstant)
			require.Equal(subtestInstance, testCase.expectedResult, insideRepository)
			require.Equal(subtestInstance, []string{"rev-parse", "--is-inside-work-tree"}, testCase.executor.recordedDetails[0].Arguments)
			require.Equal(subtestInstance, testRepositoryPathConstant, testCase.executor.recordedDetails[0].WorkingDirectory)
		})
	}
}

func TestCheckCleanWorktree(testInstance *testing.T) {
	testCases := []struct {
		name          string
		statusOutput  string
		expectedClean bool
	}{
		{name: "clean_worktree", statusOutput: "\n", expectedClean: true},
		{name: "dirty_worktree", statusOutput: " M README.md\n", expectedClean: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			gitExecutor := &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testCase.statusOutput}}
			repositoryManager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
			require.NoError(subtestInstance, creationError)

			worktreeClean, checkError := repositoryManager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
			require.NoError(subtestInstance, checkError)
			require.Equal(subtestInstance, testCase.expectedClean, worktreeClean)
			require.Equal(subtestInstance, []string{"status", "--porcelain"}, gitExecutor.recordedDetails[0].Arguments)
		})
	}
}

func TestGetRemoteURL(testInstance *testing.T) {
	gitExecutor := &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testRemoteURLOutputConstant}}
	repositoryManager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
	require.NoError(testInstance, creationError)

	remoteURL, remoteError := repositoryManager.GetRemoteURL(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, remoteError)
	require.Equal(testInstance, "git@github.com:example/dotfiles.git", remoteURL)
	require.Equal(testInstance, []string{"remote", "get-url", "--push", "origin"}, gitExecutor.recordedDetails[0].Arguments)
}

func TestListChangedFiles(testInstance *testing.T) {
	testCases := []struct {
		name          string
		diffOutput    string
		expectedFiles []string
	}{
		{
			name:          "changed_files_listed",
			diffOutput:    testChangedFilesOutputConstant,
			expectedFiles: []string{"README.md", "config/settings.yaml"},
		},
		{
			name:          "clean_repository",
			diffOutput:    "",
			expectedFiles: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			gitExecutor := &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testCase.diffOutput}}
			repositoryManager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
			require.NoError(subtestInstance, creationError)

			changedFiles, listError := repositoryManager.ListChangedFiles(context.Background(), testRepositoryPathConstant)
			require.NoError(subtestInstance, listError)
			require.Equal(subtestInstance, testCase.expectedFiles, changedFiles)
			require.Equal(subtestInstance, []string{"diff-index", "--name-only", "HEAD"}, gitExecutor.recordedDetails[0].Arguments)
		})
	}
}

func TestTopLevelDirectory(testInstance *testing.T) {
	gitExecutor := &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testTopLevelOutputConstant}}
	repositoryManager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
	require.NoError(testInstance, creationError)

	topLevelDirectory, topLevelError := repositoryManager.TopLevelDirectory(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, topLevelError)
	require.Equal(testInstance, testRepositoryPathConstant, topLevelDirectory)
	require.Equal(testInstance, []string{"rev-parse", "--show-toplevel"}, gitExecutor.recordedDetails[0].Arguments)
}
