package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the remove command.
type RemoveCmd struct{}

func (c *RemoveCmd) Name() string      { return "remove" }
func (c *RemoveCmd) Aliases() []string { return []string{"rm"} }
func (c *RemoveCmd) Synopsis() string  { return "Remove a task" }
func (c *RemoveCmd) Usage() string     { return "taskcli remove <id>" }
func (c *RemoveCmd) NeedsStore() bool  { return true }
func (c *RemoveCmd) NeedsRemote() bool { return false }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, env Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := env.Store.Load(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if err := tasks.Remove(id); err != nil {
		return reportError(errOut, err)
	}

	if err := env.Store.Save(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}

	log.Debug().Int("id", id).Msg("removed task")
	return exitcode.Success
}
