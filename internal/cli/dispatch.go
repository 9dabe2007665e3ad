// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/logging"
	"taskcli/internal/remote"
	"taskcli/internal/store"
)

// StoreFactory creates the task store from config.
type StoreFactory func(cfg *config.Config) store.Store

// RemoteFactory creates the remote backend from config.
// Used to inject the backend during dispatch.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (remote.Service, error)

// JSONFileStore is the StoreFactory used by the binary.
func JSONFileStore(cfg *config.Config) store.Store {
	return store.NewJSONFile(cfg.DataFile)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	stores   StoreFactory
	remotes  RemoteFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
// A nil remotes factory makes commands that need the remote backend check the
// OAuth files and fail with an auth error.
func NewDispatcher(registry *commands.Registry, stores StoreFactory, remotes RemoteFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		stores:   stores,
		remotes:  remotes,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list open tasks
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command first
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		dataFile  string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&dataFile, "file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag),
	// unless it came after a "--" terminator
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" &&
		!afterTerminator(args, positionalArgs) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	log.Logger = logging.New(errOut, debug)

	cfg, err := config.New(configDir, dataFile)
	if err != nil {
		// A broken config.toml only blocks commands that talk to the remote
		if cmd.NeedsRemote() {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "warning: %s (using defaults)\n", err)
		cfg = config.Defaults(configDir, dataFile)
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	log.Debug().
		Str("command", cmd.Name()).
		Str("config_dir", cfg.Dir).
		Str("data_file", cfg.DataFile).
		Msg("dispatch")

	var env commands.Env
	if cmd.NeedsStore() {
		env.Store = d.stores(cfg)
	}

	if cmd.NeedsRemote() {
		code, ok := d.connectRemote(ctx, cfg, &env, errOut)
		if !ok {
			return code
		}
	}

	return cmd.Run(ctx, cfg, env, positionalArgs, out, errOut)
}

// connectRemote builds the remote backend into env. On failure it reports the
// error and returns the exit code with ok=false.
func (d *Dispatcher) connectRemote(ctx context.Context, cfg *config.Config, env *commands.Env, errOut io.Writer) (int, bool) {
	// Without a factory only the credential files can be checked
	if d.remotes == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError, false
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: taskcli login)")
			return exitcode.AuthError, false
		}
		fmt.Fprintln(errOut, "error: no remote backend configured")
		return exitcode.BackendError, false
	}

	svc, err := d.remotes(ctx, cfg)
	if err != nil {
		if errors.Is(err, remote.ErrAuth) {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError, false
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError, false
	}
	env.Remote = svc
	return exitcode.Success, true
}

// afterTerminator reports whether the positional args were split off by a
// literal "--" that the flag parser consumed.
func afterTerminator(args, positional []string) bool {
	i := len(args) - len(positional) - 1
	return i >= 0 && args[i] == "--"
}

// reportFlagError prints a flag parse error in the CLI's format.
func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "error: %s\n", errStr)
	}
	return exitcode.UserError
}
