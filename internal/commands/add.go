package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a new task" }
func (c *AddCmd) Usage() string     { return "taskcli add <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsRemote() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env Env, args []string, out, errOut io.Writer) int {
	tasks, err := env.Store.Load(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	// Unquoted words form one description
	added, err := tasks.Add(strings.Join(args, " "))
	if err != nil {
		return reportError(errOut, err)
	}

	if err := env.Store.Save(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}

	log.Debug().Int("id", added.ID).Msg("added task")
	return exitcode.Success
}
