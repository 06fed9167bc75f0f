package push_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/push"
	"github.com/temirov/gitcat/internal/fleet/shared"
)

const (
	testPrefixConstant           = "/home/tester"
	testRepositoryNameConstant   = "dotfiles"
	testRepositoryPathConstant   = "/home/tester/dotfiles"
	testUpToDateProbeOutput      = "To github.com:example/dotfiles.git\n=\trefs/heads/main:refs/heads/main\t[up to date]\nDone\n"
	testAheadProbeOutputConstant = "To github.com:example/dotfiles.git\n \trefs/heads/main:refs/heads/main\t3f1c2aa..9d41b07\nDone\n"
	testCommitOutputConstant     = "[main 9d41b07] git cat: updating README.md\n 1 file changed, 2 insertions(+)\n"
)

type scriptedGitExecutor struct {
	resultsBySubcommand map[string]execshell.ExecutionResult
	recordedDetails     []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)

	lookupKey := details.Arguments[0]
	for _, argument := range details.Arguments {
		if argument == "--dry-run" {
			lookupKey = lookupKey + " --dry-run"
			break
		}
	}

	return executor.resultsBySubcommand[lookupKey], nil
}

type stubRepositoryManager struct {
	repositories          map[string]bool
	changedFiles          []string
	cleanWorktreeOverride *bool
	listChangedFilesCalls int
}

func (manager *stubRepositoryManager) IsGitRepository(_ context.Context, repositoryPath string) bool {
	return manager.repositories[repositoryPath]
}

func (manager *stubRepositoryManager) CheckCleanWorktree(context.Context, string) (bool, error) {
	if manager.cleanWorktreeOverride != nil {
		return *manager.cleanWorktreeOverride, nil
	}
	return len(manager.changedFiles) == 0, nil
}

func (manager *stubRepositoryManager) GetRemoteURL(context.Context, string) (string, error) {
	return "", nil
}

func (manager *stubRepositoryManager) ListChangedFiles(context.Context, string) ([]string, error) {
	manager.listChangedFilesCalls++
	return manager.changedFiles, nil
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

func newService(testInstance *testing.T, gitExecutor *scriptedGitExecutor, repositoryManager *stubRepositoryManager, output *strings.Builder) *push.Service {
	testInstance.Helper()

	service, creationError := push.NewService(push.Dependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Reporter:          shared.NewWriterReporter(output),
	})
	require.NoError(testInstance, creationError)
	return service
}

func installedRepositoryManager(changedFiles []string) *stubRepositoryManager {
	return &stubRepositoryManager{
		repositories: map[string]bool{testRepositoryPathConstant: true},
		changedFiles: changedFiles,
	}
}

func TestPushUpToDateRepository(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{
		"push --dry-run": {StandardOutput: testUpToDateProbeOutput},
	}}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, installedRepositoryManager(nil), output)

	pushError := service.Push(context.Background(), push.Options{Catalogue: testCatalogue()})
	require.NoError(testInstance, pushError)

	require.Len(testInstance, gitExecutor.recordedDetails, 1)
	require.Equal(testInstance, []string{"push", "--porcelain", "--follow-tags", "--dry-run"}, gitExecutor.recordedDetails[0].Arguments)
	require.Contains(testInstance, output.String(), "dotfiles  up to date")
}

func TestPushCommitsAndPushesChanges(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{
		"commit":         {StandardOutput: testCommitOutputConstant},
		"push --dry-run": {StandardOutput: testAheadProbeOutputConstant},
		"push":           {StandardOutput: testAheadProbeOutputConstant},
	}}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, installedRepositoryManager([]string{"README.md"}), output)

	pushError := service.Push(context.Background(), push.Options{Catalogue: testCatalogue()})
	require.NoError(testInstance, pushError)

	require.Len(testInstance, gitExecutor.recordedDetails, 3)
	require.Equal(testInstance, []string{"commit", "--all", "--message", "git cat: updating README.md"}, gitExecutor.recordedDetails[0].Arguments)
	require.Equal(testInstance, []string{"push", "--porcelain", "--follow-tags"}, gitExecutor.recordedDetails[2].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, gitExecutor.recordedDetails[0].WorkingDirectory)

	require.Contains(testInstance, output.String(), "dotfiles  commit")
	require.Contains(testInstance, output.String(), "  [main 9d41b07] git cat: updating README.md")
	require.Contains(testInstance, output.String(), "dotfiles  pushed")
}

func TestPushDryRunSkipsRealPush(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{
		"commit --dry-run": {StandardOutput: ""},
		"push --dry-run":   {StandardOutput: testAheadProbeOutputConstant},
	}}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, installedRepositoryManager([]string{"README.md"}), output)

	pushError := service.Push(context.Background(), push.Options{Catalogue: testCatalogue(), DryRun: true})
	require.NoError(testInstance, pushError)

	require.Len(testInstance, gitExecutor.recordedDetails, 2)
	require.Equal(testInstance, []string{"commit", "--all", "--message", "git cat: updating README.md", "--porcelain", "--dry-run"}, gitExecutor.recordedDetails[0].Arguments)
	require.Contains(testInstance, output.String(), "dotfiles  would push")
}

func TestCommitGeneratesMessageFromChangedFiles(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{
		"commit": {StandardOutput: testCommitOutputConstant},
	}}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, installedRepositoryManager([]string{"README.md", "config/settings.yaml"}), output)

	commitError := service.Commit(context.Background(), push.Options{Catalogue: testCatalogue()})
	require.NoError(testInstance, commitError)

	require.Len(testInstance, gitExecutor.recordedDetails, 1)
	require.Equal(testInstance, []string{"commit", "--all", "--message", "git cat: updating README.md, config/settings.yaml"}, gitExecutor.recordedDetails[0].Arguments)
	require.Contains(testInstance, output.String(), "dotfiles  commit")
}

func TestCommitSkipsCleanRepositories(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{}}
	output := &strings.Builder{}
	service := newService(testInstance, gitExecutor, installedRepositoryManager(nil), output)

	commitError := service.Commit(context.Background(), push.Options{Catalogue: testCatalogue()})
	require.NoError(testInstance, commitError)

	require.Empty(testInstance, gitExecutor.recordedDetails)
	require.Empty(testInstance, output.String())
}

func TestCommitTrustsCleanWorktreeCheck(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{resultsBySubcommand: map[string]execshell.ExecutionResult{}}
	output := &strings.Builder{}
	cleanWorktree := true
	repositoryManager := installedRepositoryManager([]string{"README.md"})
	repositoryManager.cleanWorktreeOverride = &cleanWorktree
	service := newService(testInstance, gitExecutor, repositoryManager, output)

	commitError := service.Commit(context.Background(), push.Options{Catalogue: testCatalogue()})
	require.NoError(testInstance, commitError)

	require.Zero(testInstance, repositoryManager.listChangedFilesCalls)
	require.Empty(testInstance, gitExecutor.recordedDetails)
	require.Empty(testInstance, output.String())
}
