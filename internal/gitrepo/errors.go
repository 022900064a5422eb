package gitrepo

import (
	"fmt"
)

const (
	remoteAlreadyExistsErrorTemplateConstant = "remote %s already exists in %s"
	remoteUnreachableErrorTemplateConstant   = "could not read from remote repository %s"
	operationFailedErrorTemplateConstant     = "git operation failed in %s: %s"
)

// RemoteAlreadyExistsError indicates remote creation collided with an existing remote of the same name.
type RemoteAlreadyExistsError struct {
	RepositoryPath string
	RemoteName     string
}

// Error describes the name collision.
func (collision RemoteAlreadyExistsError) Error() string {
	return fmt.Sprintf(remoteAlreadyExistsErrorTemplateConstant, collision.RemoteName, collision.RepositoryPath)
}

// RemoteUnreachableError indicates the remote repository could not be read over its transport.
type RemoteUnreachableError struct {
	RemoteURL string
	Output    string
}

// Error names the unreachable remote.
func (unreachable RemoteUnreachableError) Error() string {
	return fmt.Sprintf(remoteUnreachableErrorTemplateConstant, unreachable.RemoteURL)
}

// OperationFailedError carries the raw standard error text of a failed git invocation.
type OperationFailedError struct {
	RepositoryPath string
	Output         string
	Cause          error
}

// Error describes the failed operation with its raw git output.
func (failure OperationFailedError) Error() string {
	return fmt.Sprintf(operationFailedErrorTemplateConstant, failure.RepositoryPath, failure.Output)
}

// Unwrap exposes the underlying execution failure.
func (failure OperationFailedError) Unwrap() error {
	return failure.Cause
}
