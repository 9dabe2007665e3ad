// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/remote"
	"taskcli/internal/store"
)

// Env carries the dependencies built by the dispatcher for a command.
type Env struct {
	// Store is set when NeedsStore returns true.
	Store store.Store

	// Remote is set when NeedsRemote returns true.
	Remote remote.Service
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes the task file.
	NeedsStore() bool

	// NeedsRemote returns true if the command talks to the remote backend.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, data file, flags).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env Env, args []string, out, errOut io.Writer) int
}
