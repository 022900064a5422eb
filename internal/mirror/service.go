package mirror

import (
	"context"

	"go.uber.org/zap"
)

const (
	invalidRepositoryMessageConstant     = "invalid repository, skipping"
	reconciliationSkippedMessageConstant = "failed while creating remote for repository, skipping fetch"
	serviceLogFieldRepositoryConstant    = "repository"
	serviceLogFieldRemoteURLConstant     = "remote_url"
	statusSuccessValueConstant           = 1
	statusFailureValueConstant           = 0
)

// ServiceDependencies captures collaborators required by the batch orchestrator.
type ServiceDependencies struct {
	GitManager GitRepositoryManager
	Logger     *zap.Logger
	Clock      Clock
}

// Service processes repository targets sequentially and accumulates a status report.
type Service struct {
	reconciler *RemoteReconciler
	fetcher    *FetchRunner
	gitManager GitRepositoryManager
	logger     *zap.Logger
	clock      Clock
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clock == nil {
		dependencies.Clock = SystemClock{}
	}

	reconciler, reconcilerError := NewRemoteReconciler(ReconcilerDependencies{GitManager: dependencies.GitManager, Logger: dependencies.Logger})
	if reconcilerError != nil {
		return nil, reconcilerError
	}

	fetcher, fetcherError := NewFetchRunner(FetcherDependencies{GitManager: dependencies.GitManager, Logger: dependencies.Logger})
	if fetcherError != nil {
		return nil, fetcherError
	}

	return &Service{
		reconciler: reconciler,
		fetcher:    fetcher,
		gitManager: dependencies.GitManager,
		logger:     dependencies.Logger,
		clock:      dependencies.Clock,
	}, nil
}

// Run processes every target in order and returns the resulting status report.
//
// A failing entry never alters the recorded outcome of any other entry; an
// invalid repository is marked failed and the batch continues with the next
// target.
func (service *Service) Run(executionContext context.Context, targets []RepoTarget) StatusReport {
	statuses := map[string]int{}
	for _, target := range targets {
		statusValue := statusFailureValueConstant
		if service.processTarget(executionContext, target) {
			statusValue = statusSuccessValueConstant
		}
		statuses[StatusLabel(target.LocalPath, target.RemoteURL)] = statusValue
	}

	return StatusReport{
		UpdatedAt: service.clock.Now().Unix(),
		Statuses:  statuses,
	}
}

// processTarget reconciles and fetches a single repository, reporting overall success.
func (service *Service) processTarget(executionContext context.Context, target RepoTarget) bool {
	if !service.gitManager.CheckIsRepository(executionContext, target.LocalPath) {
		service.logger.Error(
			invalidRepositoryMessageConstant,
			zap.String(serviceLogFieldRepositoryConstant, target.LocalPath),
		)
		return false
	}

	remoteName, reconciled := service.reconciler.Reconcile(executionContext, target.LocalPath, target.RemoteURL)
	if !reconciled {
		service.logger.Error(
			reconciliationSkippedMessageConstant,
			zap.String(serviceLogFieldRepositoryConstant, target.LocalPath),
			zap.String(serviceLogFieldRemoteURLConstant, target.RemoteURL),
		)
		return false
	}

	return service.fetcher.Fetch(executionContext, target.LocalPath, remoteName, target.RemoteURL)
}
