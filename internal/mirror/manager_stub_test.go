package mirror_test

import (
	"context"
	"fmt"
	"time"
)

// stubGitRepositoryManager scripts git behavior per operation and records every call.
type stubGitRepositoryManager struct {
	checkIsRepositoryFunc func(repositoryPath string) bool
	listRemotesFunc       func(repositoryPath string) ([]string, error)
	getRemoteURLFunc      func(repositoryPath string, remoteName string) (string, error)
	addRemoteFunc         func(repositoryPath string, remoteName string, remoteURL string) error
	removeRemoteFunc      func(repositoryPath string, remoteName string) error
	fetchRemoteFunc       func(repositoryPath string, remoteName string, remoteURL string, refspec string, prune bool) error
	recordedCalls         []string
}

func (stub *stubGitRepositoryManager) CheckIsRepository(_ context.Context, repositoryPath string) bool {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("check %s", repositoryPath))
	if stub.checkIsRepositoryFunc == nil {
		return true
	}
	return stub.checkIsRepositoryFunc(repositoryPath)
}

func (stub *stubGitRepositoryManager) ListRemotes(_ context.Context, repositoryPath string) ([]string, error) {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("list %s", repositoryPath))
	if stub.listRemotesFunc == nil {
		return nil, nil
	}
	return stub.listRemotesFunc(repositoryPath)
}

func (stub *stubGitRepositoryManager) GetRemoteURL(_ context.Context, repositoryPath string, remoteName string) (string, error) {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("get-url %s %s", repositoryPath, remoteName))
	if stub.getRemoteURLFunc == nil {
		return "", nil
	}
	return stub.getRemoteURLFunc(repositoryPath, remoteName)
}

func (stub *stubGitRepositoryManager) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("add %s %s %s", repositoryPath, remoteName, remoteURL))
	if stub.addRemoteFunc == nil {
		return nil
	}
	return stub.addRemoteFunc(repositoryPath, remoteName, remoteURL)
}

func (stub *stubGitRepositoryManager) RemoveRemote(_ context.Context, repositoryPath string, remoteName string) error {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("remove %s %s", repositoryPath, remoteName))
	if stub.removeRemoteFunc == nil {
		return nil
	}
	return stub.removeRemoteFunc(repositoryPath, remoteName)
}

func (stub *stubGitRepositoryManager) FetchRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string, refspec string, prune bool) error {
	stub.recordedCalls = append(stub.recordedCalls, fmt.Sprintf("fetch %s %s %s %s prune=%t", repositoryPath, remoteName, remoteURL, refspec, prune))
	if stub.fetchRemoteFunc == nil {
		return nil
	}
	return stub.fetchRemoteFunc(repositoryPath, remoteName, remoteURL, refspec, prune)
}

// stubClock reports a fixed instant.
type stubClock struct {
	instant time.Time
}

func (clock stubClock) Now() time.Time {
	return clock.instant
}
