package mirror

import (
	"context"
	"time"
)

const (
	// OriginRemoteNameConstant identifies the single remote managed by this tool.
	OriginRemoteNameConstant = "origin"
	// MirrorRefspecConstant force-updates every local branch to match the remote branch set.
	MirrorRefspecConstant = "+refs/heads/*:refs/heads/*"
)

// RepoTarget pairs a local bare repository with the remote URL it mirrors.
type RepoTarget struct {
	LocalPath string
	RemoteURL string
}

// GitRepositoryManager exposes the repository-level git operations the mirror workflow relies on.
type GitRepositoryManager interface {
	CheckIsRepository(executionContext context.Context, repositoryPath string) bool
	ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string, refspec string, prune bool) error
}

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
