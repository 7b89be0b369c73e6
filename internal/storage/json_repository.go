package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
)

const DatabaseVersion = "1.0"

// database is the whole store document. Every operation reads and rewrites it
// in full.
type database struct {
	Version string       `json:"version"`
	NextID  uint32       `json:"next_id"`
	Todos   []model.Task `json:"todos"`
}

func emptyDatabase() database {
	return database{Version: DatabaseVersion, NextID: 1, Todos: []model.Task{}}
}

// JSONRepository stores tasks in a single indented JSON file. Writes go to a
// sibling .tmp file that is renamed over the target, so the store is never
// left half-written. There is no locking: concurrent writers race and the
// last rename wins.
type JSONRepository struct {
	path   string
	logger *log.Logger
}

func NewJSONRepository(path string, logger *log.Logger) *JSONRepository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &JSONRepository{path: path, logger: logger.WithPrefix("json")}
}

func (r *JSONRepository) Path() string {
	return r.path
}

func (r *JSONRepository) FindAll(_ context.Context) ([]model.Task, error) {
	db, err := r.load()
	if err != nil {
		return nil, err
	}
	return db.Todos, nil
}

func (r *JSONRepository) FindByID(_ context.Context, id model.TaskID) (model.Task, error) {
	db, err := r.load()
	if err != nil {
		return model.Task{}, err
	}
	idx := indexOf(db.Todos, id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	return db.Todos[idx], nil
}

func (r *JSONRepository) Save(_ context.Context, task model.Task) error {
	if err := task.Valid(); err != nil {
		return invalidTaskError(task, err)
	}
	db, err := r.load()
	if err != nil {
		return err
	}
	if idx := indexOf(db.Todos, task.ID()); idx >= 0 {
		db.Todos[idx] = task
	} else {
		db.Todos = append(db.Todos, task)
	}
	return r.store(db)
}

func (r *JSONRepository) Delete(_ context.Context, id model.TaskID) error {
	db, err := r.load()
	if err != nil {
		return err
	}
	db.Todos = slices.DeleteFunc(db.Todos, func(t model.Task) bool { return t.ID() == id })
	return r.store(db)
}

func (r *JSONRepository) NextID(_ context.Context) (uint32, error) {
	db, err := r.load()
	if err != nil {
		return 0, err
	}
	if db.NextID >= MaxTaskID {
		return 0, exhaustedError(r.path)
	}
	id := db.NextID
	db.NextID++
	if err := r.store(db); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *JSONRepository) load() (database, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("store missing, starting empty", "path", r.path)
			return emptyDatabase(), nil
		}
		return database{}, &StorageError{Code: ErrCodeIO, Op: "read", Path: r.path, Err: err}
	}
	if err := VerifyDocument(raw); err != nil {
		return database{}, &StorageError{Code: ErrCodeDecode, Op: "verify", Path: r.path, Err: err}
	}
	var db database
	if err := json.Unmarshal(raw, &db); err != nil {
		return database{}, &StorageError{Code: ErrCodeDecode, Op: "decode", Path: r.path, Err: err}
	}
	if db.Todos == nil {
		db.Todos = []model.Task{}
	}
	r.logger.Debug("store loaded", "path", r.path, "tasks", len(db.Todos), "next_id", db.NextID)
	return db, nil
}

func (r *JSONRepository) store(db database) error {
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Code: ErrCodeIO, Op: "create directory", Path: dir, Err: err}
		}
	}
	payload, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return &StorageError{Code: ErrCodeEncode, Op: "encode", Path: r.path, Err: err}
	}
	tmp := r.path + ".tmp"
	if err := writeFileSync(tmp, append(payload, '\n'), 0o644); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Code: ErrCodeIO, Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Code: ErrCodeIO, Op: "rename", Path: r.path, Err: err}
	}
	r.logger.Debug("store saved", "path", r.path, "tasks", len(db.Todos), "next_id", db.NextID)
	return nil
}

// writeFileSync is os.WriteFile plus an fsync before close so the rename
// never exposes unflushed data.
func writeFileSync(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func indexOf(tasks []model.Task, id model.TaskID) int {
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID() == id })
}
