package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

// backend opens repositories over one backing store. Calling open again
// simulates a fresh process against the same store.
type backend struct {
	name  string
	setup func(t *testing.T) (open func() Repository)
}

func backends() []backend {
	return []backend{
		{
			name: "json",
			setup: func(t *testing.T) func() Repository {
				path := filepath.Join(t.TempDir(), "todos.json")
				return func() Repository { return NewJSONRepository(path, nil) }
			},
		},
		{
			name: "memory",
			setup: func(t *testing.T) func() Repository {
				repo := NewMemoryRepository()
				return func() Repository { return repo }
			},
		},
		{
			name: "sqlite",
			setup: func(t *testing.T) func() Repository {
				path := filepath.Join(t.TempDir(), "todos.db")
				return func() Repository {
					repo, err := OpenSQLite(path, nil)
					if err != nil {
						t.Fatalf("open sqlite: %v", err)
					}
					t.Cleanup(func() { _ = repo.Close() })
					return repo
				}
			},
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, open func() Repository)) {
	t.Helper()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.setup(t))
		})
	}
}

func mustTask(t *testing.T, id uint32, title string) model.Task {
	t.Helper()
	task, err := model.NewTask(id, title)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func taskIDs(tasks []model.Task) []uint32 {
	out := make([]uint32, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID().Value())
	}
	return out
}

func equalIDs(got, want []uint32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestContractEmptyStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		tasks, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(tasks) != 0 {
			t.Fatalf("expected empty store, got %d tasks", len(tasks))
		}
		id, err := repo.NextID(ctx)
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if id != 1 {
			t.Fatalf("first id = %d, want 1", id)
		}
	})
}

func TestContractSaveAndFind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		task := mustTask(t, 1, "test task")
		if err := repo.Save(ctx, task); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := open().FindByID(ctx, task.ID())
		if err != nil {
			t.Fatalf("find by id: %v", err)
		}
		if !got.Equal(task) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, task)
		}

		completed, err := task.Complete()
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if err := repo.Save(ctx, completed); err != nil {
			t.Fatalf("save completed: %v", err)
		}
		got, err = open().FindByID(ctx, task.ID())
		if err != nil {
			t.Fatalf("find completed: %v", err)
		}
		if !got.Equal(completed) {
			t.Fatalf("completed round trip mismatch: got %+v, want %+v", got, completed)
		}
	})
}

func TestContractFindMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		if err := repo.Save(ctx, mustTask(t, 1, "present")); err != nil {
			t.Fatalf("save: %v", err)
		}
		_, err := repo.FindByID(ctx, model.NewTaskID(999))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestContractSaveReplacesInPlace(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		originals := []model.Task{
			mustTask(t, 1, "first"),
			mustTask(t, 2, "second"),
			mustTask(t, 3, "third"),
		}
		for _, task := range originals {
			if err := repo.Save(ctx, task); err != nil {
				t.Fatalf("save %d: %v", task.ID(), err)
			}
		}

		replacement := mustTask(t, 2, "second, renamed")
		if err := repo.Save(ctx, replacement); err != nil {
			t.Fatalf("replace: %v", err)
		}

		tasks, err := open().FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if !equalIDs(taskIDs(tasks), []uint32{1, 2, 3}) {
			t.Fatalf("order changed: %v", taskIDs(tasks))
		}
		if !tasks[0].Equal(originals[0]) || !tasks[2].Equal(originals[2]) {
			t.Fatal("unrelated records were altered")
		}
		if !tasks[1].Equal(replacement) {
			t.Fatalf("record 2 = %q, want replacement", tasks[1].Title())
		}
	})
}

func TestContractDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		for i := uint32(1); i <= 3; i++ {
			if err := repo.Save(ctx, mustTask(t, i, "task")); err != nil {
				t.Fatalf("save %d: %v", i, err)
			}
		}
		if err := repo.Delete(ctx, model.NewTaskID(2)); err != nil {
			t.Fatalf("delete: %v", err)
		}
		tasks, err := open().FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if !equalIDs(taskIDs(tasks), []uint32{1, 3}) {
			t.Fatalf("unexpected ids after delete: %v", taskIDs(tasks))
		}
	})
}

func TestContractDeleteMissingIsNoop(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		kept := mustTask(t, 1, "kept")
		if err := repo.Save(ctx, kept); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := repo.Delete(ctx, model.NewTaskID(42)); err != nil {
			t.Fatalf("delete missing: %v", err)
		}
		tasks, err := open().FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(tasks) != 1 || !tasks[0].Equal(kept) {
			t.Fatalf("store changed by no-op delete: %v", taskIDs(tasks))
		}
	})
}

func TestContractNextIDMonotonicAcrossReopen(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		var prev uint32
		for i := 0; i < 5; i++ {
			id, err := open().NextID(ctx)
			if err != nil {
				t.Fatalf("next id: %v", err)
			}
			if i == 0 && id != 1 {
				t.Fatalf("first id = %d, want 1", id)
			}
			if i > 0 && id <= prev {
				t.Fatalf("id %d not greater than previous %d", id, prev)
			}
			prev = id
		}
	})
}

func TestContractNextIDIndependentOfSave(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		burned, err := repo.NextID(ctx)
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if err := repo.Save(ctx, mustTask(t, 100, "explicit id")); err != nil {
			t.Fatalf("save: %v", err)
		}
		next, err := repo.NextID(ctx)
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if next != burned+1 {
			t.Fatalf("next id = %d, want %d", next, burned+1)
		}
	})
}

func TestContractTimestampsKeepOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		first := mustTask(t, 1, "first")
		time.Sleep(time.Millisecond)
		second := mustTask(t, 2, "second")
		for _, task := range []model.Task{first, second} {
			if err := repo.Save(ctx, task); err != nil {
				t.Fatalf("save: %v", err)
			}
		}
		tasks, err := open().FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if !tasks[0].CreatedAt().Before(tasks[1].CreatedAt()) {
			t.Fatalf("created_at order lost: %v !< %v", tasks[0].CreatedAt(), tasks[1].CreatedAt())
		}
	})
}

// seedNextID moves the id counter of repo to next.
func seedNextID(t *testing.T, repo Repository, next uint32) {
	t.Helper()
	switch r := repo.(type) {
	case *JSONRepository:
		db, err := r.load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		db.NextID = next
		if err := r.store(db); err != nil {
			t.Fatalf("store: %v", err)
		}
	case *MemoryRepository:
		r.mu.Lock()
		r.nextID = next
		r.mu.Unlock()
	case *SQLiteRepository:
		if _, err := r.db.Exec(`UPDATE counters SET value = ? WHERE name = ?`, next, taskIDCounter); err != nil {
			t.Fatalf("seed counter: %v", err)
		}
	default:
		t.Fatalf("cannot seed counter of %T", repo)
	}
}

func TestContractNextIDStopsAtLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		existing := mustTask(t, 1, "existing")
		if err := repo.Save(ctx, existing); err != nil {
			t.Fatalf("save: %v", err)
		}
		seedNextID(t, repo, MaxTaskID-1)

		id, err := open().NextID(ctx)
		if err != nil {
			t.Fatalf("last id: %v", err)
		}
		if id != MaxTaskID-1 {
			t.Fatalf("last id = %d, want %d", id, uint32(MaxTaskID-1))
		}
		for i := 0; i < 2; i++ {
			id, err := open().NextID(ctx)
			if !IsCode(err, ErrCodeExhausted) {
				t.Fatalf("allocation past the limit returned id %d, err %v", id, err)
			}
		}

		got, err := open().FindByID(ctx, existing.ID())
		if err != nil || !got.Equal(existing) {
			t.Fatalf("existing task changed: %+v, %v", got, err)
		}
	})
}

func TestContractSaveRejectsInvalidTask(t *testing.T) {
	forEachBackend(t, func(t *testing.T, open func() Repository) {
		ctx := context.Background()
		repo := open()
		kept := mustTask(t, 1, "kept")
		if err := repo.Save(ctx, kept); err != nil {
			t.Fatalf("save: %v", err)
		}

		// Complete on a completed task returns the zero Task with its error.
		completed, _ := kept.Complete()
		zero, _ := completed.Complete()
		err := repo.Save(ctx, zero)
		if !errors.Is(err, model.ErrValidation) || !errors.Is(err, model.ErrEmptyTitle) {
			t.Fatalf("expected validation error saving the zero task, got %v", err)
		}

		tasks, err := open().FindAll(ctx)
		if err != nil {
			t.Fatalf("store unreadable after rejected save: %v", err)
		}
		if len(tasks) != 1 || !tasks[0].Equal(kept) {
			t.Fatalf("unexpected tasks after rejected save: %v", taskIDs(tasks))
		}
	})
}
