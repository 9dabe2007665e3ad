package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskcli/internal/exitcode"
	"taskcli/internal/store"
	"taskcli/internal/task"
)

// reportError prints err and returns the exit code for its kind.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return codeFor(err)
}

func codeFor(err error) int {
	var (
		validationErr *task.ValidationError
		notFoundErr   *task.NotFoundError
		readErr       *store.ReadError
		parseErr      *store.ParseError
		writeErr      *store.WriteError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr):
		return exitcode.UserError
	case errors.As(err, &readErr), errors.As(err, &parseErr), errors.As(err, &writeErr):
		return exitcode.StorageError
	default:
		return exitcode.BackendError
	}
}

// ErrTaskIDRequired is returned when a command needing an id got none.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single positional task id argument.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}
