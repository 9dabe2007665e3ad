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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task as completed" }
func (c *DoneCmd) Usage() string     { return "taskcli done <id>" }
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) NeedsRemote() bool { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := env.Store.Load(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if err := tasks.MarkDone(id); err != nil {
		return reportError(errOut, err)
	}

	if err := env.Store.Save(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}

	log.Debug().Int("id", id).Msg("completed task")
	return exitcode.Success
}
