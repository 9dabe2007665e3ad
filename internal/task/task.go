// Package task defines the task model and the in-memory list operations.
package task

import (
	"fmt"
	"strings"
)

// Task is a single to-do entry.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Marker returns the status marker shown in listings.
func (t Task) Marker() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// List is the ordered task list, oldest-added first.
// IDs are unique within a list.
type List []Task

// NextID returns the id the next added task receives: the current maximum plus one.
// Removed ids are only reused when they were the maximum.
func (l List) NextID() int {
	maxID := 0
	for _, t := range l {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Add appends a new open task with the trimmed description.
// The list is unchanged when the description is blank.
func (l *List) Add(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Message: "description cannot be empty"}
	}

	t := Task{
		ID:          l.NextID(),
		Description: description,
		Completed:   false,
	}
	*l = append(*l, t)
	return t, nil
}

// Visible returns the tasks a listing shows, in stored order.
// Completed tasks are skipped unless includeCompleted is set.
func (l List) Visible(includeCompleted bool) []Task {
	var visible []Task
	for _, t := range l {
		if includeCompleted || !t.Completed {
			visible = append(visible, t)
		}
	}
	return visible
}

// MarkDone marks the task with the given id as completed.
func (l List) MarkDone(id int) error {
	for i := range l {
		if l[i].ID == id {
			l[i].Completed = true
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// Remove deletes every task with the given id.
func (l *List) Remove(id int) error {
	kept := make(List, 0, len(*l))
	for _, t := range *l {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(*l) {
		return &NotFoundError{ID: id}
	}
	*l = kept
	return nil
}

// ValidationError is returned when task input is rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is returned when no task has the requested id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No task with id %d", e.ID)
}
