// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty description, unknown id, bad config).
	UserError = 1

	// StorageError indicates the task file could not be read, parsed or written.
	StorageError = 2

	// AuthError indicates a missing or invalid OAuth setup for push.
	AuthError = 3

	// BackendError indicates a remote API or network error.
	BackendError = 4
)
