package config

import (
	"fmt"
	"os"
)

// Exit codes shared by CLI entry points.
const (
	ExitFailure = 1
	// ExitInvalidInput reports input the rules rejected, such as duplicate tiers.
	ExitInvalidInput = 2
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	ExitCodef(ExitFailure, format, args...)
}

// ExitCodef writes a formatted error message to stderr and exits with code.
func ExitCodef(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
