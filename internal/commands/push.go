package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/remote"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
// It copies open local tasks to a remote list; the local file is never written.
type PushCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy open tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "taskcli push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsRemote() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, env Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, err := env.Store.Load(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.PushList
	}

	var list remote.TaskList
	if listName != "" {
		list, err = env.Remote.ResolveList(ctx, listName)
		if err != nil {
			if errors.Is(err, remote.ErrListNotFound) {
				fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
				return exitcode.UserError
			}
			if errors.Is(err, remote.ErrListAmbiguous) {
				fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
				return exitcode.UserError
			}
			return reportRemoteError(errOut, err)
		}
	} else {
		list, err = env.Remote.DefaultList(ctx)
		if err != nil {
			return reportRemoteError(errOut, err)
		}
	}

	existing, err := remote.OpenTitles(ctx, env.Remote, list.ID)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	pushed := 0
	for _, t := range tasks.Visible(false) {
		title := output.RemoteTitle(t)
		if existing[title] {
			log.Debug().Int("id", t.ID).Msg("already open remotely, skipping")
			continue
		}

		if err := env.Remote.CreateTask(ctx, list.ID, title); err != nil {
			return reportRemoteError(errOut, err)
		}
		existing[title] = true
		pushed++
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d task(s)\n", pushed)
	}
	return exitcode.Success
}

// reportRemoteError prints a remote failure; rejected credentials are auth errors.
func reportRemoteError(errOut io.Writer, err error) int {
	if errors.Is(err, remote.ErrAuth) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
