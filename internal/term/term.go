// Package term detects whether a file descriptor is a terminal.
package term

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(fd)
}
