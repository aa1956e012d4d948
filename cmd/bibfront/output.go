package main

import (
	"fmt"
	"os"
)

// ListTitleMaxLen is the truncation length for titles in list output.
const ListTitleMaxLen = 60

// exitWithError writes an error message to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// warn writes a warning to stderr without terminating.
func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
