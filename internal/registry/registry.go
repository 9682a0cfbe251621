package registry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/tasker/internal/errors"
	"github.com/Iron-Ham/tasker/internal/logging"
	"github.com/Iron-Ham/tasker/internal/task"
	"github.com/spf13/afero"
)

// FileExtension is appended to every file name passed to Save and Load.
const FileExtension = ".json"

// Outcome messages for successful persistence operations.
const (
	MsgSaved  = "Data saved"
	MsgLoaded = "Data loaded"
)

// ErrTrailingData is the cause of a load failure when a file holds more than
// one JSON value.
var ErrTrailingData = errors.New("unexpected data after task list")

// Registry is an ordered collection of tasks. It is not safe for concurrent
// use; the console drives it from a single goroutine.
type Registry struct {
	fs     afero.Fs
	dir    string
	logger *logging.Logger
	tasks  []task.Task
}

// New creates an empty Registry that saves and loads files on fs, resolving
// file names in dir ("" means the current directory). A nil logger discards
// log output.
func New(fs afero.Fs, dir string, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Registry{
		fs:     fs,
		dir:    dir,
		logger: logger,
		tasks:  make([]task.Task, 0),
	}
}

// Len returns the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Tasks returns a copy of the tasks in order.
func (r *Registry) Tasks() []task.Task {
	out := make([]task.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Get returns the task at position i.
func (r *Registry) Get(i int) (task.Task, bool) {
	if i < 0 || i >= len(r.tasks) {
		return task.Task{}, false
	}
	return r.tasks[i], true
}

// Add appends t to the end of the registry.
func (r *Registry) Add(t task.Task) {
	r.tasks = append(r.tasks, t)
	r.logger.Debug("task added", "task", t.Name(), "position", len(r.tasks)-1)
}

// Find returns the position of the first task named exactly name.
func (r *Registry) Find(name string) (int, bool) {
	for i, t := range r.tasks {
		if t.Name() == name {
			return i, true
		}
	}
	return -1, false
}

// Edit replaces the first task named name with replacement, keeping its
// position. The whole record is swapped, so the creation time becomes
// replacement's.
func (r *Registry) Edit(name string, replacement task.Task) (string, error) {
	i, ok := r.Find(name)
	if !ok {
		return "", errors.NewTaskNotFoundError(name)
	}

	r.tasks[i] = replacement
	r.logger.Debug("task replaced", "task", name, "position", i, "new_name", replacement.Name())
	return fmt.Sprintf("Task \"%s\" updated successfully", name), nil
}

// Remove deletes the first task named name. Later tasks shift down one
// position.
func (r *Registry) Remove(name string) (string, error) {
	i, ok := r.Find(name)
	if !ok {
		return "", errors.NewTaskNotFoundError(name)
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.logger.Debug("task removed", "task", name, "position", i)
	return fmt.Sprintf("Task \"%s\" removed successfully", name), nil
}

// Clear removes every task.
func (r *Registry) Clear() {
	r.tasks = make([]task.Task, 0)
}

// List writes every task's description to w in order, each followed by a
// blank line.
func (r *Registry) List(w io.Writer) error {
	for _, t := range r.tasks {
		if _, err := fmt.Fprintln(w, t.Describe()); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the file path Save and Load use for filename.
func (r *Registry) Path(filename string) string {
	return filepath.Join(r.dir, filename+FileExtension)
}

// Save writes all tasks to filename+".json" as one JSON array. It refuses to
// touch an existing file. If encoding fails the partially written file is
// removed.
func (r *Registry) Save(filename string) (string, error) {
	path := r.Path(filename)
	log := r.logger.WithFile(path)

	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return "", errors.NewPersistenceError("creating file", path, err)
	}
	if exists {
		return "", errors.NewAlreadyExistsError(errors.ResourceFile, path)
	}

	f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			log.Debug("file appeared before exclusive create", "error", err.Error())
			return "", errors.NewAlreadyExistsError(errors.ResourceFile, path)
		}
		return "", errors.NewPersistenceError("creating file", path, err)
	}

	if err := writeTasks(f, r.tasks); err != nil {
		_ = f.Close()
		if rmErr := r.fs.Remove(path); rmErr != nil {
			log.Warn("failed to remove partial file", "error", rmErr.Error())
		}
		return "", errors.NewPersistenceError("saving data", path, err)
	}
	if err := f.Close(); err != nil {
		if rmErr := r.fs.Remove(path); rmErr != nil {
			log.Warn("failed to remove partial file", "error", rmErr.Error())
		}
		return "", errors.NewPersistenceError("saving data", path, err)
	}

	log.Debug("tasks saved", "count", len(r.tasks))
	return MsgSaved, nil
}

func writeTasks(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(tasks); err != nil {
		return err
	}
	return bw.Flush()
}

// Load replaces all tasks with the contents of filename+".json". The current
// tasks are only discarded once the whole file has decoded successfully.
func (r *Registry) Load(filename string) (string, error) {
	path := r.Path(filename)
	log := r.logger.WithFile(path)

	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return "", errors.NewPersistenceError("opening file", path, err)
	}
	if !exists {
		return "", errors.NewFileNotFoundError(path)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return "", errors.NewPersistenceError("opening file", path, err)
	}
	defer func() { _ = f.Close() }()

	loaded, err := readTasks(f)
	if err != nil {
		return "", errors.NewPersistenceError("loading data", path, err)
	}
	if loaded == nil {
		loaded = make([]task.Task, 0)
	}

	r.tasks = loaded
	log.Debug("tasks loaded", "count", len(loaded))
	return MsgLoaded, nil
}

// readTasks decodes a single JSON array of tasks. Anything after the array
// other than whitespace makes the document invalid.
func readTasks(r io.Reader) ([]task.Task, error) {
	dec := json.NewDecoder(bufio.NewReader(r))

	var tasks []task.Task
	if err := dec.Decode(&tasks); err != nil {
		return nil, err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, err
	}
	return tasks, nil
}
