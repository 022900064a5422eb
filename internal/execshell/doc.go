// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec with zap-backed lifecycle logging via ShellExecutor and
// exposes OSCommandRunner for default process execution so repository
// operations can run git in a testable manner.
package execshell
