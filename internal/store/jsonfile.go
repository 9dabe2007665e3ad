package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"taskcli/internal/task"
)

// JSONFile is a Store backed by a single pretty-printed JSON array.
//
// Saves go through a sibling temporary file that is synced and then renamed over
// the target, so the visible file always holds either the old or the new list.
// No cross-process locking is done: concurrent writers race and the last rename wins.
type JSONFile struct {
	path string
}

var _ Store = (*JSONFile)(nil)

// NewJSONFile returns a store for the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (s *JSONFile) Path() string {
	return s.path
}

// tempPath is the sibling file used while saving: tasks.json -> tasks.tmp.
// A data file that already ends in .tmp gets a further suffix: x.tmp -> x.tmp.tmp.
func (s *JSONFile) tempPath() string {
	tmp := strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".tmp"
	if tmp == s.path {
		tmp = s.path + ".tmp"
	}
	return tmp
}

// Load reads the task list from disk.
func (s *JSONFile) Load(ctx context.Context) (task.List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", s.path).Msg("tasks file missing, starting empty")
			return task.List{}, nil
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return task.List{}, nil
	}

	if err := validateTaskFile(data); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}

	var tasks task.List
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if tasks == nil {
		tasks = task.List{}
	}

	log.Debug().Str("path", s.path).Int("tasks", len(tasks)).Msg("loaded tasks")
	return tasks, nil
}

// Save writes the full list atomically.
func (s *JSONFile) Save(ctx context.Context, tasks task.List) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Op: "create data directory", Path: dir, Err: err}
	}

	data, err := encode(tasks)
	if err != nil {
		return &WriteError{Op: "encode", Path: s.path, Err: err}
	}

	tmp := s.tempPath()
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Op: "replace", Path: s.path, Err: err}
	}

	log.Debug().Str("path", s.path).Int("tasks", len(tasks)).Int("bytes", len(data)).Msg("saved tasks")
	return nil
}

// encode renders tasks as an indented JSON array; nil encodes as [].
func encode(tasks task.List) ([]byte, error) {
	if tasks == nil {
		tasks = task.List{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSynced writes data to path and forces it to stable storage.
func writeSynced(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Op: "create temporary file", Path: path, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &WriteError{Op: "write", Path: path, Err: err}
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &WriteError{Op: "flush", Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &WriteError{Op: "flush", Path: path, Err: err}
	}
	return nil
}
