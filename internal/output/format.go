// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskcli/internal/task"
)

const (
	// EmptyMessage is printed when the list has no tasks at all.
	EmptyMessage = "No tasks found."

	// AllCompletedMessage is printed when every task was filtered out.
	AllCompletedMessage = "No tasks to show (use --all to include completed)."
)

// FormatTask formats a task line.
// Format: "{MARKER} {ID}: {DESCRIPTION}\n" where MARKER is "[x]" or "[ ]".
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%s %d: %s\n", t.Marker(), t.ID, t.Description)
}

// PrintTasks prints the visible tasks in stored order, or an empty-state message.
// Completed tasks are shown only when includeCompleted is set.
func PrintTasks(w io.Writer, tasks task.List, includeCompleted bool) {
	visible := tasks.Visible(includeCompleted)
	for _, t := range visible {
		FormatTask(w, t)
	}

	if len(visible) > 0 {
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyMessage)
	} else {
		fmt.Fprintln(w, AllCompletedMessage)
	}
}

// RemoteTitle returns the title used for a task on a remote list.
// Newlines are flattened so the title stays on one line.
func RemoteTitle(t task.Task) string {
	title := strings.ReplaceAll(t.Description, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}
