// Package remote defines the backend-agnostic interface for the push target.
package remote

import "context"

// PageSize is the number of tasks per ListOpenTasks page.
const PageSize = 100

// Service is a remote task backend that local tasks can be pushed to.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns open tasks for a list.
	// page is 1-based; page size is PageSize.
	// Returns empty slice if page is out of range.
	ListOpenTasks(ctx context.Context, listID string, page int) ([]Task, error)

	// CreateTask creates a new open task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}
