// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskcli/internal/remote"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// ErrNotFound is returned when a list ID is unknown.
var ErrNotFound = errors.New("not found")

// FakeRemote is an in-memory implementation of remote.Service for testing.
type FakeRemote struct {
	mu    sync.RWMutex
	lists []remote.TaskList
	tasks map[string][]remote.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr   error
	ResolveListErr   error
	ListOpenTasksErr error
	CreateTaskErr    error
}

var _ remote.Service = (*FakeRemote)(nil)

// NewFakeRemote creates a new FakeRemote with a default list.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []remote.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks: map[string][]remote.Task{DefaultListID: nil},
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, remote.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask adds a task with the given status to a list.
func (f *FakeRemote) AddTask(listID, title, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], remote.Task{
		ID:     fmt.Sprintf("%s-%d", listID, len(f.tasks[listID])+1),
		Title:  title,
		Status: status,
	})
}

// Titles returns the titles of all tasks in a list, in insertion order.
func (f *FakeRemote) Titles(listID string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var titles []string
	for _, t := range f.tasks[listID] {
		titles = append(titles, t.Title)
	}
	return titles
}

// DefaultList implements remote.Service.
func (f *FakeRemote) DefaultList(ctx context.Context) (remote.TaskList, error) {
	if f.DefaultListErr != nil {
		return remote.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return remote.TaskList{}, errors.New("no default list")
}

// ResolveList implements remote.Service.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (remote.TaskList, error) {
	if f.ResolveListErr != nil {
		return remote.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.TrimSpace(name)
	var matches []remote.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return remote.TaskList{}, fmt.Errorf("%w: %s", remote.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return remote.TaskList{}, fmt.Errorf("%w: %s", remote.ErrListAmbiguous, name)
	}
}

// ListOpenTasks implements remote.Service.
func (f *FakeRemote) ListOpenTasks(ctx context.Context, listID string, page int) ([]remote.Task, error) {
	if f.ListOpenTasksErr != nil {
		return nil, f.ListOpenTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}

	var open []remote.Task
	for _, t := range tasks {
		if t.Status == "needsAction" {
			open = append(open, t)
		}
	}

	start := (page - 1) * remote.PageSize
	if start >= len(open) {
		return nil, nil
	}
	end := min(start+remote.PageSize, len(open))
	return open[start:end], nil
}

// CreateTask implements remote.Service.
func (f *FakeRemote) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return ErrNotFound
	}
	f.tasks[listID] = append(f.tasks[listID], remote.Task{
		ID:     fmt.Sprintf("%s-%d", listID, len(f.tasks[listID])+1),
		Title:  title,
		Status: "needsAction",
	})
	return nil
}
