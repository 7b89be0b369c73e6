package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/sandeepkv93/todo/internal/model"
)

// MemoryRepository keeps tasks in process memory. It backs tests and the
// "memory" backend; nothing survives the process.
type MemoryRepository struct {
	mu     sync.Mutex
	tasks  map[model.TaskID]model.Task
	order  []model.TaskID
	nextID uint32
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tasks:  make(map[model.TaskID]model.Task),
		nextID: 1,
	}
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id model.TaskID) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return task, nil
}

func (r *MemoryRepository) Save(_ context.Context, task model.Task) error {
	if err := task.Valid(); err != nil {
		return invalidTaskError(task, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID()]; !ok {
		r.order = append(r.order, task.ID())
	}
	r.tasks[task.ID()] = task
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return nil
	}
	delete(r.tasks, id)
	r.order = slices.DeleteFunc(r.order, func(v model.TaskID) bool { return v == id })
	return nil
}

func (r *MemoryRepository) NextID(_ context.Context) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nextID >= MaxTaskID {
		return 0, exhaustedError("")
	}
	id := r.nextID
	r.nextID++
	return id, nil
}
