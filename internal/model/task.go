package model

import (
	"strings"
	"time"
)

type StatusKind string

const (
	StatusActive    StatusKind = "Active"
	StatusCompleted StatusKind = "Completed"
)

// Status is either Active or Completed with the completion time. The zero
// value is Active.
type Status struct {
	kind        StatusKind
	completedAt time.Time
}

func Active() Status {
	return Status{kind: StatusActive}
}

func CompletedAt(at time.Time) Status {
	return Status{kind: StatusCompleted, completedAt: at}
}

func (s Status) Kind() StatusKind {
	if s.kind == StatusCompleted {
		return StatusCompleted
	}
	return StatusActive
}

func (s Status) IsCompleted() bool {
	return s.Kind() == StatusCompleted
}

// CompletedAt reports the completion time; ok is false for active tasks.
func (s Status) CompletedAt() (at time.Time, ok bool) {
	if !s.IsCompleted() {
		return time.Time{}, false
	}
	return s.completedAt, true
}

func (s Status) String() string {
	return string(s.Kind())
}

func (s Status) Equal(other Status) bool {
	if s.Kind() != other.Kind() {
		return false
	}
	return s.completedAt.Equal(other.completedAt)
}

type Task struct {
	id        TaskID
	title     Title
	status    Status
	createdAt time.Time
}

// NewTask builds an active task stamped with the current local time.
func NewTask(id uint32, title string) (Task, error) {
	t, err := NewTitle(title)
	if err != nil {
		return Task{}, err
	}
	return Task{
		id:        NewTaskID(id),
		title:     t,
		status:    Active(),
		createdAt: time.Now(),
	}, nil
}

// RestoreTask rebuilds a task read back from storage.
func RestoreTask(id TaskID, title string, status Status, createdAt time.Time) (Task, error) {
	t, err := NewTitle(title)
	if err != nil {
		return Task{}, err
	}
	if createdAt.IsZero() {
		return Task{}, ErrMissingCreatedAt
	}
	return Task{id: id, title: t, status: status, createdAt: createdAt}, nil
}

// Valid reports whether t can be persisted. The zero Task is not valid.
func (t Task) Valid() error {
	if strings.TrimSpace(t.title.String()) == "" {
		return ErrEmptyTitle
	}
	if t.createdAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}

func (t Task) ID() TaskID           { return t.id }
func (t Task) Title() Title         { return t.title }
func (t Task) Status() Status       { return t.status }
func (t Task) CreatedAt() time.Time { return t.createdAt }
func (t Task) IsCompleted() bool    { return t.status.IsCompleted() }

// Complete returns a copy of t marked completed now. The receiver is never
// modified.
func (t Task) Complete() (Task, error) {
	if t.status.IsCompleted() {
		return Task{}, ErrAlreadyCompleted
	}
	next := t
	next.status = CompletedAt(time.Now())
	return next, nil
}

func (t Task) Equal(other Task) bool {
	return t.id == other.id &&
		t.title == other.title &&
		t.status.Equal(other.status) &&
		t.createdAt.Equal(other.createdAt)
}
