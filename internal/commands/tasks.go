package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

// Add allocates an id, then validates and saves the task. The id is spent
// even when the title is rejected.
func Add(ctx context.Context, repo storage.Repository, title string) (model.Task, error) {
	id, err := repo.NextID(ctx)
	if err != nil {
		return model.Task{}, err
	}
	task, err := model.NewTask(id, title)
	if err != nil {
		return model.Task{}, err
	}
	if err := repo.Save(ctx, task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Listing splits the store into active and completed tasks. Completed is only
// filled when requested; the counts always cover every task.
type Listing struct {
	Active         []model.Task
	Completed      []model.Task
	ShowCompleted  bool
	Total          int
	ActiveCount    int
	CompletedCount int
}

func (l Listing) Empty() bool {
	return l.Total == 0
}

func List(ctx context.Context, repo storage.Repository, showCompleted bool) (Listing, error) {
	tasks, err := repo.FindAll(ctx)
	if err != nil {
		return Listing{}, err
	}
	out := Listing{
		Active:        make([]model.Task, 0, len(tasks)),
		ShowCompleted: showCompleted,
		Total:         len(tasks),
	}
	for _, task := range tasks {
		if task.IsCompleted() {
			out.CompletedCount++
			if showCompleted {
				out.Completed = append(out.Completed, task)
			}
			continue
		}
		out.ActiveCount++
		out.Active = append(out.Active, task)
	}
	return out, nil
}

// Done completes the task and saves the new value.
func Done(ctx context.Context, repo storage.Repository, id model.TaskID) (model.Task, error) {
	task, err := find(ctx, repo, id)
	if err != nil {
		return model.Task{}, err
	}
	completed, err := task.Complete()
	if err != nil {
		return model.Task{}, err
	}
	if err := repo.Save(ctx, completed); err != nil {
		return model.Task{}, err
	}
	return completed, nil
}

// Delete removes the task. A missing id still succeeds.
func Delete(ctx context.Context, repo storage.Repository, id model.TaskID) error {
	return repo.Delete(ctx, id)
}

func Show(ctx context.Context, repo storage.Repository, id model.TaskID) (model.Task, error) {
	return find(ctx, repo, id)
}

func find(ctx context.Context, repo storage.Repository, id model.TaskID) (model.Task, error) {
	task, err := repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Task{}, &CommandError{Code: ErrCodeNotFound, Message: fmt.Sprintf("no task found for ID %d", id), Err: err}
	}
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// NewHandlers binds the task operations to repo for Execute.
func NewHandlers(ctx context.Context, repo storage.Repository) Handlers {
	return Handlers{
		Add: func(a AddArgs) (Result, error) {
			task, err := Add(ctx, repo, a.Title)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Task added! (ID: %d)", task.ID())}, nil
		},
		List: func(a ListArgs) (Result, error) {
			listing, err := List(ctx, repo, a.All)
			if err != nil {
				return Result{}, err
			}
			if listing.Empty() {
				return Result{Message: "No tasks"}, nil
			}
			return Result{Message: SummaryLine(listing)}, nil
		},
		Done: func(a DoneArgs) (Result, error) {
			if _, err := Done(ctx, repo, a.ID); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Task completed! (ID: %d)", a.ID)}, nil
		},
		Delete: func(a DeleteArgs) (Result, error) {
			if err := Delete(ctx, repo, a.ID); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("Task deleted! (ID %d)", a.ID)}, nil
		},
		Show: func(a ShowArgs) (Result, error) {
			task, err := Show(ctx, repo, a.ID)
			if err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("[%d] %s (%s)", task.ID(), task.Title(), task.Status())}, nil
		},
	}
}

func SummaryLine(l Listing) string {
	return fmt.Sprintf("Total: %d tasks (%d active, %d completed)", l.Total, l.ActiveCount, l.CompletedCount)
}
