package mirror

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
)

const (
	remoteCreationAttemptLimitConstant          = 2
	ambiguousRemotesMessageConstant             = "repository has an unexpected amount of remotes, resolve the conflict manually"
	remoteEnumerationFailedMessageConstant      = "unable to enumerate repository remotes"
	remoteLookupFailedMessageConstant           = "unable to read existing remote URL"
	remoteCreationFailedMessageConstant         = "unable to create origin remote"
	remoteDeletionFailedMessageConstant         = "unable to delete stale origin remote"
	persistentRemoteCollisionMessageConstant    = "origin remote kept reappearing, giving up after one recreation attempt"
	reconcilerLogFieldRepositoryConstant        = "repository"
	reconcilerLogFieldRemoteCountConstant       = "remote_count"
	reconcilerLogFieldDesiredRemoteURLConstant  = "desired_remote_url"
	reconcilerLogFieldGitErrorConstant          = "git_error"
	reconcilerGitManagerMissingMessageConstant  = "git repository manager not configured"
	reconcilerExpectedSingleRemoteCountConstant = 1
)

// ErrGitManagerNotConfigured reports reconciler construction without a repository manager.
var ErrGitManagerNotConfigured = errors.New(reconcilerGitManagerMissingMessageConstant)

// ReconcilerDependencies captures collaborators required to reconcile remotes.
type ReconcilerDependencies struct {
	GitManager GitRepositoryManager
	Logger     *zap.Logger
}

// RemoteReconciler converges a repository onto a single origin remote with the desired URL.
type RemoteReconciler struct {
	dependencies ReconcilerDependencies
}

// NewRemoteReconciler constructs a RemoteReconciler from the provided dependencies.
func NewRemoteReconciler(dependencies ReconcilerDependencies) (*RemoteReconciler, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &RemoteReconciler{dependencies: dependencies}, nil
}

// Reconcile ensures the repository has exactly one usable remote pointing at desiredURL.
//
// It returns the name of the remote to fetch from and whether reconciliation
// succeeded. Repositories with more than one pre-existing remote are an
// unresolvable ambiguity and are never repaired.
func (reconciler *RemoteReconciler) Reconcile(executionContext context.Context, repositoryPath string, desiredURL string) (string, bool) {
	remoteNames, enumerationError := reconciler.dependencies.GitManager.ListRemotes(executionContext, repositoryPath)
	if enumerationError != nil {
		reconciler.dependencies.Logger.Error(
			remoteEnumerationFailedMessageConstant,
			zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
			zap.String(reconcilerLogFieldGitErrorConstant, enumerationError.Error()),
		)
		return "", false
	}

	if len(remoteNames) > reconcilerExpectedSingleRemoteCountConstant {
		reconciler.dependencies.Logger.Error(
			ambiguousRemotesMessageConstant,
			zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
			zap.Int(reconcilerLogFieldRemoteCountConstant, len(remoteNames)),
		)
		return "", false
	}

	if len(remoteNames) == reconcilerExpectedSingleRemoteCountConstant {
		existingURL, lookupError := reconciler.dependencies.GitManager.GetRemoteURL(executionContext, repositoryPath, remoteNames[0])
		if lookupError != nil {
			reconciler.dependencies.Logger.Error(
				remoteLookupFailedMessageConstant,
				zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
				zap.String(reconcilerLogFieldGitErrorConstant, lookupError.Error()),
			)
			return "", false
		}
		if existingURL == desiredURL {
			return remoteNames[0], true
		}
	}

	return reconciler.recreateOriginRemote(executionContext, repositoryPath, desiredURL)
}

// recreateOriginRemote creates the origin remote, recreating it at most once on a name collision.
func (reconciler *RemoteReconciler) recreateOriginRemote(executionContext context.Context, repositoryPath string, desiredURL string) (string, bool) {
	for attemptIndex := 0; attemptIndex < remoteCreationAttemptLimitConstant; attemptIndex++ {
		creationError := reconciler.dependencies.GitManager.AddRemote(executionContext, repositoryPath, OriginRemoteNameConstant, desiredURL)
		if creationError == nil {
			return OriginRemoteNameConstant, true
		}

		collisionError := gitrepo.RemoteAlreadyExistsError{}
		if !errors.As(creationError, &collisionError) {
			reconciler.dependencies.Logger.Error(
				remoteCreationFailedMessageConstant,
				zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
				zap.String(reconcilerLogFieldDesiredRemoteURLConstant, desiredURL),
				zap.String(reconcilerLogFieldGitErrorConstant, creationError.Error()),
			)
			return "", false
		}

		if attemptIndex+1 == remoteCreationAttemptLimitConstant {
			break
		}

		deletionError := reconciler.dependencies.GitManager.RemoveRemote(executionContext, repositoryPath, OriginRemoteNameConstant)
		if deletionError != nil {
			reconciler.dependencies.Logger.Error(
				remoteDeletionFailedMessageConstant,
				zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
				zap.String(reconcilerLogFieldGitErrorConstant, deletionError.Error()),
			)
			return "", false
		}
	}

	reconciler.dependencies.Logger.Error(
		persistentRemoteCollisionMessageConstant,
		zap.String(reconcilerLogFieldRepositoryConstant, repositoryPath),
		zap.String(reconcilerLogFieldDesiredRemoteURLConstant, desiredURL),
	)
	return "", false
}
