package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/vladisnik/git-bare-sync/internal/execshell"
)

const (
	gitRevParseSubcommandConstant          = "rev-parse"
	gitGitDirFlagConstant                  = "--git-dir"
	gitRemoteSubcommandConstant            = "remote"
	gitRemoteGetURLSubcommandConstant      = "get-url"
	gitRemoteAddSubcommandConstant         = "add"
	gitRemoteRemoveSubcommandConstant      = "remove"
	gitFetchSubcommandConstant             = "fetch"
	gitPruneFlagConstant                   = "--prune"
	remoteAlreadyExistsPatternConstant     = "already exists"
	remoteUnreachablePatternConstant       = "Could not read from remote repository"
	executorNotConfiguredMessageConstant   = "git executor not configured"
	remoteListLineSeparatorConstant        = "\n"
	requiredValueMessageConstant           = "value required"
	missingRemoteURLForDiagnosticsConstant = ""
)

// ErrExecutorNotConfigured reports construction without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository-level git operations through a GitExecutor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsRepository reports whether the provided path holds a git repository.
func (manager *RepositoryManager) CheckIsRepository(executionContext context.Context, repositoryPath string) bool {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitGitDirFlagConstant},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError == nil
}

// ListRemotes returns the names of every remote configured in the repository.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant},
		WorkingDirectory: repositoryPath,
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, manager.classifyFailure(repositoryPath, missingRemoteURLForDiagnosticsConstant, executionError)
	}

	remoteNames := []string{}
	for _, line := range strings.Split(executionResult.StandardOutput, remoteListLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		remoteNames = append(remoteNames, trimmedLine)
	}
	return remoteNames, nil
}

// GetRemoteURL reads the URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", manager.classifyFailure(repositoryPath, missingRemoteURLForDiagnosticsConstant, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// AddRemote creates a named remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError == nil {
		return nil
	}

	if strings.Contains(standardErrorText(executionError), remoteAlreadyExistsPatternConstant) {
		return RemoteAlreadyExistsError{RepositoryPath: repositoryPath, RemoteName: remoteName}
	}
	return manager.classifyFailure(repositoryPath, remoteURL, executionError)
}

// RemoveRemote deletes the named remote from the repository configuration.
func (manager *RepositoryManager) RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteRemoveSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return manager.classifyFailure(repositoryPath, missingRemoteURLForDiagnosticsConstant, executionError)
	}
	return nil
}

// FetchRemote fetches the named remote using the provided refspec, optionally pruning stale branches.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string, refspec string, prune bool) error {
	fetchArguments := []string{gitFetchSubcommandConstant}
	if prune {
		fetchArguments = append(fetchArguments, gitPruneFlagConstant)
	}
	fetchArguments = append(fetchArguments, remoteName, refspec)

	commandDetails := execshell.CommandDetails{
		Arguments:        fetchArguments,
		WorkingDirectory: repositoryPath,
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return manager.classifyFailure(repositoryPath, remoteURL, executionError)
	}
	return nil
}

// classifyFailure converts raw execution failures into the typed errors consumed by callers.
func (manager *RepositoryManager) classifyFailure(repositoryPath string, remoteURL string, executionError error) error {
	standardError := standardErrorText(executionError)
	if strings.Contains(standardError, remoteUnreachablePatternConstant) {
		return RemoteUnreachableError{RemoteURL: remoteURL, Output: standardError}
	}
	return OperationFailedError{RepositoryPath: repositoryPath, Output: standardError, Cause: executionError}
}

// standardErrorText extracts the captured stderr of a failed command when available.
func standardErrorText(executionError error) string {
	commandFailure := execshell.CommandFailedError{}
	if errors.As(executionError, &commandFailure) {
		return strings.TrimSpace(commandFailure.Result.StandardError)
	}
	return strings.TrimSpace(executionError.Error())
}
