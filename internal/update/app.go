// Package update holds the interactive task browser: a bubbletea model over a
// storage.Repository that shares the command layer with the CLI.
package update

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/commands"
	domainmodel "github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Complete  key.Binding
	Delete    key.Binding
	ToggleAll key.Binding
	Reload    key.Binding
	Palette   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show completed")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Palette:   key.NewBinding(key.WithKeys(":", "/"), key.WithHelp(":", "command")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Delete, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Complete, k.Delete, k.ToggleAll, k.Reload},
		{k.Palette, k.Help, k.Quit},
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	ShowCompleted bool
	Listing       commands.Listing
	// Tasks holds the rows in table order: active first, then completed.
	Tasks       []domainmodel.Task
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	ctx          context.Context
	repo         storage.Repository
	handlers     commands.Handlers
	taskTable    table.Model
	commandInput textinput.Model
	helpModel    help.Model
}

func NewModel(ctx context.Context, repo storage.Repository) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Prompt = ": "
	input.Placeholder = "add <title> | done <id> | delete <id> | list all"
	input.CharLimit = 256

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "", Width: 2},
			{Title: "Title", Width: 48},
			{Title: "Created", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	tbl.SetStyles(styles)

	m := Model{
		Keys:         DefaultKeyMap(),
		ctx:          ctx,
		repo:         repo,
		handlers:     commands.NewHandlers(ctx, repo),
		taskTable:    tbl,
		commandInput: input,
		helpModel:    help.New(),
	}
	return m.reload()
}

// Selected returns the task under the table cursor.
func (m Model) Selected() (domainmodel.Task, bool) {
	i := m.taskTable.Cursor()
	if i < 0 || i >= len(m.Tasks) {
		return domainmodel.Task{}, false
	}
	return m.Tasks[i], true
}

func (m Model) reload() Model {
	listing, err := commands.List(m.ctx, m.repo, m.ShowCompleted)
	if err != nil {
		return m.fail(err)
	}
	m.Listing = listing
	m.Tasks = append(append([]domainmodel.Task(nil), listing.Active...), listing.Completed...)

	rows := make([]table.Row, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		mark := " "
		if task.IsCompleted() {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(task.ID().Value()), 10),
			mark,
			task.Title().String(),
			task.CreatedAt().Format("2006-01-02 15:04"),
		})
	}
	m.taskTable.SetRows(rows)
	switch c := m.taskTable.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.taskTable.SetCursor(0)
	case c >= len(rows):
		m.taskTable.SetCursor(len(rows) - 1)
	}
	return m
}

func (m Model) fail(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	return m
}

func (m Model) run(cmd commands.Command) Model {
	res, err := commands.Execute(cmd, m.handlers)
	if err != nil {
		return m.reload().fail(err)
	}
	m = m.reload()
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) completeSelected() Model {
	task, ok := m.Selected()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	return m.run(commands.Command{
		Type: commands.TypeDone,
		Raw:  fmt.Sprintf("done %d", task.ID()),
		Done: &commands.DoneArgs{ID: task.ID()},
	})
}

func (m Model) deleteSelected() Model {
	task, ok := m.Selected()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	return m.run(commands.Command{
		Type:   commands.TypeDelete,
		Raw:    fmt.Sprintf("delete %d", task.ID()),
		Delete: &commands.DeleteArgs{ID: task.ID()},
	})
}
