// Package dependencies constructs default implementations for fleet services.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gitcat/internal/execshell"
	"github.com/temirov/gitcat/internal/fleet/shared"
	"github.com/temirov/gitcat/internal/gitrepo"
	"github.com/temirov/gitcat/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed
// default. With human readable logging enabled a console command event logger
// renders the lifecycle messages.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}

	if humanReadableLogging {
		shellExecutor.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
