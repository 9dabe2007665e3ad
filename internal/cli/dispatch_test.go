package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcli/internal/cli"
	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/remote"
	"taskcli/internal/testutil"
)

// testFactory creates a remote factory that returns the given FakeRemote.
func testFactory(svc *testutil.FakeRemote) cli.RemoteFactory {
	return func(ctx context.Context, cfg *config.Config) (remote.Service, error) {
		return svc, nil
	}
}

type env struct {
	dispatcher *cli.Dispatcher
	configDir  string
	dataFile   string
}

func newEnv(t *testing.T, remotes cli.RemoteFactory) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{
		dispatcher: cli.NewDispatcher(commands.DefaultRegistry, cli.JSONFileStore, remotes),
		configDir:  filepath.Join(dir, "config"),
		dataFile:   filepath.Join(dir, "data", "tasks.json"),
	}
}

// run dispatches name with the env's config dir and data file, then args.
func (e *env) run(t *testing.T, name string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	full := append([]string{name, "--config", e.configDir, "--file", e.dataFile}, args...)
	return e.runRaw(t, full...)
}

func (e *env) runRaw(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = e.dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.runRaw(t, "unknowncmd")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: unknowncmd\n", stderr)
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.runRaw(t, "--quiet")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: --quiet\n", stderr)
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.runRaw(t, "help", "--unknown")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -unknown\n", stderr)
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.runRaw(t, "list", "--file")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: flag needs an argument: -file\n", stderr)
}

func TestDispatcher_VersionCommand(t *testing.T) {
	e := newEnv(t, nil)

	stdout, stderr, code := e.run(t, "version")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "taskcli 0.1.0\n", stdout)
}

func TestDispatcher_HelpCommand(t *testing.T) {
	e := newEnv(t, nil)

	stdout, stderr, code := e.run(t, "help")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
}

func TestDispatcher_NoArgsListsDefaultFile(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	e := newEnv(t, nil)

	stdout, stderr, code := e.runRaw(t)
	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "No tasks found.\n", stdout)

	if _, err := os.Stat(filepath.Join(dataHome, "taskcli")); err == nil {
		t.Error("listing must not create the data directory")
	}
}

func TestDispatcher_Workflow(t *testing.T) {
	e := newEnv(t, nil)

	steps := [][]string{
		{"add", "buy", "milk"},
		{"add", "walk the dog"},
		{"add", "call mom"},
		{"done", "1"},
		{"rm", "2"},
	}
	for _, step := range steps {
		stdout, stderr, code := e.run(t, step[0], step[1:]...)
		require.Equal(t, exitcode.Success, code, "%v: %s", step, stderr)
		assert.Empty(t, stdout, "%v", step)
	}

	stdout, _, code := e.run(t, "list")
	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, "[ ] 3: call mom\n", stdout)

	stdout, _, code = e.run(t, "list", "-a")
	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, "[x] 1: buy milk\n[ ] 3: call mom\n", stdout)

	stdout, _, code = e.run(t, "ls", "--all")
	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, "[x] 1: buy milk\n[ ] 3: call mom\n", stdout)
}

func TestDispatcher_ErrorExitCodes(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.run(t, "done", "3")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: No task with id 3\n", stderr)

	_, stderr, code = e.run(t, "add", "   ")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: description cannot be empty\n", stderr)

	require.NoError(t, os.MkdirAll(filepath.Dir(e.dataFile), 0o755))
	require.NoError(t, os.WriteFile(e.dataFile, []byte("[{"), 0o644))

	_, stderr, code = e.run(t, "list")
	assert.Equal(t, exitcode.StorageError, code)
	assert.Contains(t, stderr, "error: failed to parse tasks file at "+e.dataFile)
}

func TestDispatcher_MalformedConfig(t *testing.T) {
	e := newEnv(t, testFactory(testutil.NewFakeRemote()))
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.toml"), []byte("[push"), 0o644))

	t.Run("core commands warn and use defaults", func(t *testing.T) {
		_, stderr, code := e.run(t, "add", "still works")
		require.Equal(t, exitcode.Success, code, stderr)
		assert.Contains(t, stderr, "warning: invalid config.toml")

		stdout, _, code := e.run(t, "list")
		require.Equal(t, exitcode.Success, code)
		assert.Equal(t, "[ ] 1: still works\n", stdout)
	})

	t.Run("push fails", func(t *testing.T) {
		_, stderr, code := e.run(t, "push")
		assert.Equal(t, exitcode.UserError, code)
		assert.Contains(t, stderr, "error: invalid config.toml")
	})
}

func TestDispatcher_DoubleDashTerminator(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.run(t, "add", "--", "-5 degrees outside")
	require.Equal(t, exitcode.Success, code, stderr)

	stdout, _, code := e.run(t, "list")
	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, "[ ] 1: -5 degrees outside\n", stdout)

	_, stderr, code = e.run(t, "add", "-5 degrees outside")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -5 degrees outside\n", stderr)
}

func TestDispatcher_ConfigDataFile(t *testing.T) {
	e := newEnv(t, nil)
	dataFile := filepath.Join(t.TempDir(), "from-config.json")
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.toml"), []byte("data_file = \""+filepath.ToSlash(dataFile)+"\"\n"), 0o644))

	_, stderr, code := e.runRaw(t, "add", "--config", e.configDir, "from config")
	require.Equal(t, exitcode.Success, code, stderr)

	assert.FileExists(t, dataFile)
	assert.NoFileExists(t, e.dataFile)
}

func TestDispatcher_Debug(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.run(t, "list", "--debug")
	require.Equal(t, exitcode.Success, code)
	assert.Contains(t, stderr, "dispatch")
	assert.Contains(t, stderr, "command=list")

	_, stderr, code = e.run(t, "list")
	require.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
}

func TestDispatcher_PushWithoutCredentials(t *testing.T) {
	e := newEnv(t, nil)

	_, stderr, code := e.run(t, "push")

	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: oauth_client.json not found in "+e.configDir+"\n", stderr)
}

func TestDispatcher_PushWithFactory(t *testing.T) {
	svc := testutil.NewFakeRemote()
	e := newEnv(t, testFactory(svc))

	_, stderr, code := e.run(t, "add", "a")
	require.Equal(t, exitcode.Success, code, stderr)

	stdout, stderr, code := e.run(t, "push")
	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "pushed 1 task(s)\n", stdout)
	assert.Equal(t, []string{"a"}, svc.Titles(testutil.DefaultListID))

	stdout, _, code = e.run(t, "push", "--quiet")
	require.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestDispatcher_PushFactoryErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
		want string
	}{
		{fmt.Errorf("%w: not logged in (run: taskcli login)", remote.ErrAuth), exitcode.AuthError, "error: auth error: not logged in (run: taskcli login)\n"},
		{errors.New("dial tcp: refused"), exitcode.BackendError, "error: backend error: dial tcp: refused\n"},
		{errors.New("bad token in proxy response"), exitcode.BackendError, "error: backend error: bad token in proxy response\n"},
	}

	for _, tt := range tests {
		e := newEnv(t, func(ctx context.Context, cfg *config.Config) (remote.Service, error) {
			return nil, tt.err
		})

		_, stderr, code := e.run(t, "push")

		assert.Equal(t, tt.code, code)
		assert.Equal(t, tt.want, stderr)
	}
}
