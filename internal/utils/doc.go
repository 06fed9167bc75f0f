// Package utils hosts shared configuration, logging, and context helpers for git-cat commands.
package utils
