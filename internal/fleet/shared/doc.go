// Package shared holds the collaborator interfaces and reporting helpers used
// by every fleet command.
package shared
