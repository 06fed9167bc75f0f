// Package catalogue models the git-cat repository catalogue: an ordered
// mapping of directory names to remote git URLs persisted in a flat text file.
package catalogue
