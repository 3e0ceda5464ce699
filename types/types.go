// Package types defines the shared data structures passed between the
// editor engine and its front ends.
// This package contains only type definitions.
package types

// Command is the parsed representation of an editor command line.
type Command struct {
	Verb string
	Args []string // whitespace-separated arguments, case preserved
	Rest string   // raw text after the verb, for values containing spaces
}

// Result is the output of a single editor step.
type Result struct {
	Output  []string
	Changed bool // true when the in-memory save was modified
	Err     error
}
