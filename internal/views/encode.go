package views

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
)

// TaskView is the flat, machine-readable form of a task.
type TaskView struct {
	ID          uint32     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Status      string     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

type ListingView struct {
	Active         []TaskView `json:"active" yaml:"active"`
	Completed      []TaskView `json:"completed,omitempty" yaml:"completed,omitempty"`
	Total          int        `json:"total" yaml:"total"`
	ActiveCount    int        `json:"active_count" yaml:"active_count"`
	CompletedCount int        `json:"completed_count" yaml:"completed_count"`
}

func NewTaskView(task model.Task) TaskView {
	v := TaskView{
		ID:        task.ID().Value(),
		Title:     task.Title().String(),
		Status:    string(task.Status().Kind()),
		CreatedAt: task.CreatedAt(),
	}
	if at, ok := task.Status().CompletedAt(); ok {
		v.CompletedAt = &at
	}
	return v
}

func NewListingView(l commands.Listing) ListingView {
	out := ListingView{
		Active:         make([]TaskView, 0, len(l.Active)),
		Total:          l.Total,
		ActiveCount:    l.ActiveCount,
		CompletedCount: l.CompletedCount,
	}
	for _, task := range l.Active {
		out.Active = append(out.Active, NewTaskView(task))
	}
	if l.ShowCompleted {
		for _, task := range l.Completed {
			out.Completed = append(out.Completed, NewTaskView(task))
		}
	}
	return out
}

func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
