// Package store persists the task list.
package store

import (
	"context"
	"fmt"

	"taskcli/internal/task"
)

// Store loads and saves the complete task list.
// Every Save rewrites the whole list; there are no partial updates.
type Store interface {
	// Load returns the persisted list. A missing or blank file is an empty list.
	Load(ctx context.Context) (task.List, error)

	// Save replaces the persisted list with tasks.
	Save(ctx context.Context, tasks task.List) error
}

// ReadError is returned when the task file exists but cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read tasks file at %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError is returned when the task file content is not a valid task list.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse tasks file at %s (ensure it contains valid JSON): %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError is returned when saving fails. Op names the failed step.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to save tasks (%s) at %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
