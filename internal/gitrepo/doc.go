// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for inspecting work trees, branches, and
// remotes, along with structured parsing of remote URLs used when repositories
// are catalogued.
package gitrepo
