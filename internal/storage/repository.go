package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todo/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Repository persists tasks and allocates their ids.
type Repository interface {
	// FindAll returns every stored task in storage order.
	FindAll(ctx context.Context) ([]model.Task, error)
	// FindByID returns ErrNotFound when no task has the id.
	FindByID(ctx context.Context, id model.TaskID) (model.Task, error)
	// Save inserts the task or replaces the record with the same id in place.
	Save(ctx context.Context, task model.Task) error
	// Delete removes the task with the id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id model.TaskID) error
	// NextID allocates and persists a fresh id. Ids are never handed out twice.
	NextID(ctx context.Context) (uint32, error)
}
