// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions git-cat uses to run
// git across catalogued repositories in a testable manner.
package execshell
