package mirror

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
)

const (
	remoteUnreachableMessageConstant        = "could not read from remote repository"
	fetchFailedMessageConstant              = "fetching remote updates failed"
	fetcherLogFieldRepositoryConstant       = "repository"
	fetcherLogFieldRemoteURLConstant        = "remote_url"
	fetcherLogFieldGitErrorConstant         = "git_error"
	fetcherGitManagerMissingMessageConstant = "git repository manager not configured"
)

// FetcherDependencies captures collaborators required to fetch remote updates.
type FetcherDependencies struct {
	GitManager GitRepositoryManager
	Logger     *zap.Logger
}

// FetchRunner fetches branch updates with mirror semantics from a reconciled remote.
type FetchRunner struct {
	dependencies FetcherDependencies
}

// NewFetchRunner constructs a FetchRunner from the provided dependencies.
func NewFetchRunner(dependencies FetcherDependencies) (*FetchRunner, error) {
	if dependencies.GitManager == nil {
		return nil, errors.New(fetcherGitManagerMissingMessageConstant)
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &FetchRunner{dependencies: dependencies}, nil
}

// Fetch force-updates every branch from the named remote and prunes deleted branches.
func (runner *FetchRunner) Fetch(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) bool {
	fetchError := runner.dependencies.GitManager.FetchRemote(executionContext, repositoryPath, remoteName, remoteURL, MirrorRefspecConstant, true)
	if fetchError == nil {
		return true
	}

	unreachableError := gitrepo.RemoteUnreachableError{}
	if errors.As(fetchError, &unreachableError) {
		runner.dependencies.Logger.Error(
			remoteUnreachableMessageConstant,
			zap.String(fetcherLogFieldRemoteURLConstant, unreachableError.RemoteURL),
		)
		return false
	}

	runner.dependencies.Logger.Error(
		fetchFailedMessageConstant,
		zap.String(fetcherLogFieldRepositoryConstant, repositoryPath),
		zap.String(fetcherLogFieldGitErrorConstant, fetchError.Error()),
	)
	return false
}
