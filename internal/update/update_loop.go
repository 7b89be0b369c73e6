package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/views"
)

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg re-reads the repository, e.g. after another process changed it.
type ReloadMsg struct{}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		switch {
		case key.Matches(typed, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.Keys.Palette):
			return m.openPalette(), nil
		case key.Matches(typed, m.Keys.Help):
			m.HelpVisible = !m.HelpVisible
			m.helpModel.ShowAll = m.HelpVisible
			return m, nil
		case key.Matches(typed, m.Keys.Complete):
			return m.completeSelected(), nil
		case key.Matches(typed, m.Keys.Delete):
			return m.deleteSelected(), nil
		case key.Matches(typed, m.Keys.ToggleAll):
			m.ShowCompleted = !m.ShowCompleted
			m = m.reload()
			if m.ShowCompleted {
				m.Status = StatusBar{Text: "showing completed tasks"}
			} else {
				m.Status = StatusBar{Text: "hiding completed tasks"}
			}
			return m, nil
		case key.Matches(typed, m.Keys.Reload):
			m = m.reload()
			m.Status = StatusBar{Text: "reloaded"}
			return m, nil
		}
		var cmd tea.Cmd
		m.taskTable, cmd = m.taskTable.Update(typed)
		return m, cmd
	case tea.WindowSizeMsg:
		m.taskTable.SetHeight(max(typed.Height-8, 3))
		m.helpModel.Width = typed.Width
		return m, nil
	case ReloadMsg:
		return m.reload(), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		return m.fail(typed.Err), nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := views.EmptyListing
	if len(m.Tasks) > 0 {
		body = m.taskTable.View()
	}
	input := ""
	if m.Palette.Active {
		input = m.commandInput.View()
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("todo | %d active | %d completed", m.Listing.ActiveCount, m.Listing.CompletedCount),
		Body:       body,
		Input:      input,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.View(m.Keys),
	})
}
