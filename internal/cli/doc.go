// Package cli parses command-line arguments for the checktree binary,
// loads a data file into a widget and prints it, either once or in an
// interactive session.
package cli
