// Package catalogue provides the commands that maintain the gitcatrc file:
// adding repositories, removing them, and listing the catalogue.
package catalogue
