package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todo/internal/model"
)

const (
	sqliteTimeLayout = time.RFC3339Nano
	taskIDCounter    = "task_id"
)

// SQLiteRepository is the alternate local backend. Storage order is insertion
// order; replacing a task keeps its position.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(db *sql.DB, logger *log.Logger) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SQLiteRepository{db: db, logger: logger.WithPrefix("sqlite")}, nil
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Code: ErrCodeIO, Op: "create directory", Path: dir, Err: err}
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StorageError{Code: ErrCodeIO, Op: "open sqlite", Path: path, Err: err}
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, &StorageError{Code: ErrCodeIO, Op: "migrate", Path: path, Err: err}
	}
	repo, err := NewSQLiteRepository(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, status, completed_at, created_at
		FROM tasks ORDER BY seq ASC`)
	if err != nil {
		return nil, ioError("list tasks", err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, ioError("list tasks", err)
	}
	return out, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id model.TaskID) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, status, completed_at, created_at
		FROM tasks WHERE id = ?`, id.Value())
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, task model.Task) error {
	if err := task.Valid(); err != nil {
		return invalidTaskError(task, err)
	}
	var completed any
	if at, ok := task.Status().CompletedAt(); ok {
		completed = mustTime(at)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, status, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			completed_at = excluded.completed_at,
			created_at = excluded.created_at`,
		task.ID().Value(), task.Title().String(), string(task.Status().Kind()), completed, mustTime(task.CreatedAt()),
	)
	if err != nil {
		return ioError("save task", err)
	}
	r.logger.Debug("task saved", "id", task.ID(), "status", task.Status())
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id model.TaskID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.Value()); err != nil {
		return ioError("delete task", err)
	}
	return nil
}

func (r *SQLiteRepository) NextID(ctx context.Context) (uint32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ioError("begin next id", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, taskIDCounter).Scan(&next); err != nil {
		return 0, ioError("read id counter", err)
	}
	if next < 0 || next >= MaxTaskID {
		return 0, exhaustedError("")
	}
	if _, err := tx.ExecContext(ctx, `UPDATE counters SET value = ? WHERE name = ?`, next+1, taskIDCounter); err != nil {
		return 0, ioError("bump id counter", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, ioError("commit next id", err)
	}
	r.logger.Debug("id allocated", "id", next)
	return uint32(next), nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseStoredTime(v string) (time.Time, error) {
	tm, err := time.Parse(sqliteTimeLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	return tm.Local(), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var (
		id        uint32
		title     string
		status    string
		completed sql.NullString
		created   string
	)
	if err := s.Scan(&id, &title, &status, &completed, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, ioError("scan task", err)
	}
	createdAt, err := parseStoredTime(created)
	if err != nil {
		return model.Task{}, decodeError(id, err)
	}
	st := model.Active()
	switch model.StatusKind(status) {
	case model.StatusActive:
	case model.StatusCompleted:
		if !completed.Valid {
			return model.Task{}, decodeError(id, errors.New("completed task without completed_at"))
		}
		completedAt, err := parseStoredTime(completed.String)
		if err != nil {
			return model.Task{}, decodeError(id, err)
		}
		st = model.CompletedAt(completedAt)
	default:
		return model.Task{}, decodeError(id, fmt.Errorf("unknown status %q", status))
	}
	task, err := model.RestoreTask(model.NewTaskID(id), title, st, createdAt)
	if err != nil {
		return model.Task{}, decodeError(id, err)
	}
	return task, nil
}

func ioError(op string, err error) error {
	return &StorageError{Code: ErrCodeIO, Op: op, Err: err}
}

func decodeError(id uint32, err error) error {
	return &StorageError{Code: ErrCodeDecode, Op: fmt.Sprintf("decode task %d", id), Err: err}
}
