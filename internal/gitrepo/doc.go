// Package gitrepo contains helpers for interrogating and manipulating bare Git repositories.
//
// It exposes RepositoryManager for validating repositories and managing their
// remotes through the git binary, along with ssh remote URL utilities consumed
// by the mirror service.
package gitrepo
