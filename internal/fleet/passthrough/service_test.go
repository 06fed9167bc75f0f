package passthrough_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/passthrough"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	testPrefixConstant         = "/home/tester"
	testRepositoryNameConstant = "dotfiles"
	testRepositoryPathConstant = "/home/tester/dotfiles"
	testGitOutputConstant      = "9d41b07 Add installation notes\n3f1c2aa Start feature work\n"
)

type scriptedGitExecutor struct {
	executionResult execshell.ExecutionResult
	recordedDetails []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return executor.executionResult, nil
}

type stubRepositoryManager struct {
	repositories map[string]bool
}

func (manager *stubRepositoryManager) IsGitRepository(_ context.Context, repositoryPath string) bool {
	return manager.repositories[repositoryPath]
}

func (manager *stubRepositoryManager) CheckCleanWorktree(context.Context, string) (bool, error) {
	return true, nil
}

func (manager *stubRepositoryManager) GetRemoteURL(context.Context, string) (string, error) {
	return "", nil
}

func (manager *stubRepositoryManager) ListChangedFiles(context.Context, string) ([]string, error) {
	return nil, nil
}

func (manager *stubRepositoryManager) TopLevelDirectory(context.Context, string) (string, error) {
	return "", nil
}

func testCatalogue() catalogue.Catalogue {
	return catalogue.Catalogue{
		Prefix:  testPrefixConstant,
		Entries: []catalogue.Entry{{Name: testRepositoryNameConstant, RemoteURL: "git@github.com:example/dotfiles.git"}},
	}
}

func newService(testInstance *testing.T, gitExecutor *scriptedGitExecutor, repositoryManager *stubRepositoryManager, output *strings.Builder) *passthrough.Service {
	testInstance.Helper()

	service, creationError := passthrough.NewService(passthrough.Dependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Reporter:          shared.NewWriterReporter(output),
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestRunForwardsArgumentsToEveryRepository(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testGitOutputConstant}}
	output := &strings.Builder{}
	repositoryManager := &stubRepositoryManager{repositories: map[string]bool{testRepositoryPathConstant: true}}
	service := newService(testInstance, gitExecutor, repositoryManager, output)

	runError := service.Run(context.Background(), passthrough.Options{
		Catalogue: testCatalogue(),
		Arguments: []string{"log", "--oneline", "-2"},
	})
	require.NoError(testInstance, runError)

	require.Equal(testInstance, []string{"log", "--oneline", "-2"}, gitExecutor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, gitExecutor.recordedDetails[0].WorkingDirectory)
	require.Contains(testInstance, output.String(), "dotfiles  log --oneline -2")
	require.Contains(testInstance, output.String(), "  9d41b07 Add installation notes")
	require.Contains(testInstance, output.String(), "  3f1c2aa Start feature work")
}

func TestRunRequiresArguments(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{}
	output := &strings.Builder{}
	repositoryManager := &stubRepositoryManager{repositories: map[string]bool{testRepositoryPathConstant: true}}
	service := newService(testInstance, gitExecutor, repositoryManager, output)

	runError := service.Run(context.Background(), passthrough.Options{Catalogue: testCatalogue()})
	require.ErrorIs(testInstance, runError, passthrough.ErrNoArguments)
	require.Empty(testInstance, gitExecutor.recordedDetails)
}

func TestRunReportsMissingRepositories(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, &stubRepositoryManager{}, output)

	runError := service.Run(context.Background(), passthrough.Options{
		Catalogue: testCatalogue(),
		Arguments: []string{"log", "--oneline"},
	})
	require.NoError(testInstance, runError)

	require.Empty(testInstance, gitExecutor.recordedDetails)
	require.Contains(testInstance, output.String(), "dotfiles  not installed")
}
