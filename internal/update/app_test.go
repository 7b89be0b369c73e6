package update

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/storage"
)

func seededModel(t *testing.T, titles ...string) (Model, *storage.MemoryRepository) {
	t.Helper()
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	for _, title := range titles {
		if _, err := commands.Add(ctx, repo, title); err != nil {
			t.Fatalf("add %q: %v", title, err)
		}
	}
	return NewModel(ctx, repo), repo
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelLoadsActiveTasks(t *testing.T) {
	m, _ := seededModel(t, "write report", "buy milk")
	if len(m.Tasks) != 2 || m.Listing.ActiveCount != 2 {
		t.Fatalf("expected two active tasks, got %+v", m.Listing)
	}
	task, ok := m.Selected()
	if !ok || task.ID().Value() != 1 {
		t.Fatalf("expected first task selected, got %v %v", task.ID(), ok)
	}
	out := m.View()
	if !strings.Contains(out, "write report") || !strings.Contains(out, "2 active") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func TestEmptyStoreView(t *testing.T) {
	m, _ := seededModel(t)
	if _, ok := m.Selected(); ok {
		t.Fatal("expected no selection in empty store")
	}
	if !strings.Contains(m.View(), "No tasks") {
		t.Fatalf("expected empty message:\n%s", m.View())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Status.IsError {
		t.Fatalf("expected error status when nothing is selected, got %+v", m.Status)
	}
}

func TestCompleteSelectedTask(t *testing.T) {
	m, repo := seededModel(t, "write report", "buy milk")
	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeySpace})

	task, err := repo.FindByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !task.IsCompleted() {
		t.Fatal("expected second task to be completed")
	}
	if m.Status.Text != "Task completed! (ID: 2)" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if len(m.Tasks) != 1 || m.Listing.CompletedCount != 1 {
		t.Fatalf("completed task should be hidden, got %+v", m.Listing)
	}
}

func TestCompleteTwiceReportsError(t *testing.T) {
	m, _ := seededModel(t, "write report")
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || m.LastError == nil {
		t.Fatalf("expected already-completed error, got %+v", m.Status)
	}
}

func TestDeleteSelectedTask(t *testing.T) {
	m, repo := seededModel(t, "write report", "buy milk")
	m = press(t, m, runes("x"))

	if _, err := repo.FindByID(context.Background(), 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected task 1 deleted, got %v", err)
	}
	if m.Status.Text != "Task deleted! (ID 1)" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if task, ok := m.Selected(); !ok || task.ID().Value() != 2 {
		t.Fatalf("expected selection to move to remaining task")
	}
}

func TestToggleShowCompleted(t *testing.T) {
	m, _ := seededModel(t, "write report", "buy milk")
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if len(m.Tasks) != 1 {
		t.Fatalf("expected one visible task, got %d", len(m.Tasks))
	}
	m = press(t, m, runes("a"))
	if !m.ShowCompleted || len(m.Tasks) != 2 || !m.Tasks[1].IsCompleted() {
		t.Fatalf("expected completed task listed last, got %+v", m.Tasks)
	}
}

func TestPaletteAddsTask(t *testing.T) {
	m, repo := seededModel(t)
	m = press(t, m, runes(":"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = press(t, m, runes("add"), tea.KeyMsg{Type: tea.KeySpace}, runes("buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Palette.Active {
		t.Fatal("expected palette closed after execution")
	}
	if m.Status.Text != "Task added! (ID: 1)" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	tasks, err := repo.FindAll(context.Background())
	if err != nil || len(tasks) != 1 || tasks[0].Title().String() != "buy milk" {
		t.Fatalf("unexpected store: %v %v", tasks, err)
	}
	if len(m.Tasks) != 1 {
		t.Fatalf("expected table reloaded, got %d rows", len(m.Tasks))
	}
}

func TestPaletteListAllAndErrors(t *testing.T) {
	m, _ := seededModel(t, "write report")
	m = press(t, m, runes("/"), runes("done 1"), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("/"), runes("list all"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.ShowCompleted || len(m.Tasks) != 1 {
		t.Fatalf("expected completed tasks shown, got %+v", m.Listing)
	}

	m = press(t, m, runes(":"), runes("done 9"), tea.KeyMsg{Type: tea.KeyEnter})
	var cmdErr *commands.CommandError
	if !errors.As(m.LastError, &cmdErr) || cmdErr.Code != commands.ErrCodeNotFound {
		t.Fatalf("expected not_found error, got %v", m.LastError)
	}

	m = press(t, m, runes(":"), runes("frobnicate"), tea.KeyMsg{Type: tea.KeyEnter})
	if !errors.As(m.LastError, &cmdErr) || cmdErr.Code != commands.ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command error, got %v", m.LastError)
	}
}

func TestPaletteEscape(t *testing.T) {
	m, _ := seededModel(t, "write report")
	m = press(t, m, runes(":"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette reset, got %+v", m.Palette)
	}
	if len(m.Tasks) != 1 {
		t.Fatal("typing x inside the palette must not delete")
	}
}

func TestStatusMessages(t *testing.T) {
	m, _ := seededModel(t)
	m = press(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m = press(t, m, AppErrorMsg{Err: errors.New("boom")})
	if !m.Status.IsError || m.Status.Text != "boom" || m.LastError == nil {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	m = press(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	m, repo := seededModel(t)
	if _, err := commands.Add(context.Background(), repo, "from elsewhere"); err != nil {
		t.Fatalf("add: %v", err)
	}
	m = press(t, m, ReloadMsg{})
	if len(m.Tasks) != 1 {
		t.Fatalf("expected reload to pick up new task, got %d", len(m.Tasks))
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := seededModel(t)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}
