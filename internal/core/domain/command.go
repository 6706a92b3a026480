package domain

import "strings"

// Command is a synthesized process invocation.
type Command struct {
	Program string
	Args    []string
	// Dir is the working directory. Paths in Program and Args are relative to it.
	Dir string
	// Interactive commands inherit the terminal instead of streaming into the logger.
	Interactive bool
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String renders the literal command line.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// CompileRecord is one entry of a compile database.
type CompileRecord struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Output    string   `json:"output"`
	Arguments []string `json:"arguments"`
}
