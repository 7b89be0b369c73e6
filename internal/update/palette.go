package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette = CommandPaletteState{Active: true}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		case tea.KeySpace:
			m.commandInput.SetValue(m.commandInput.Value() + " ")
		default:
			m.commandInput, _ = m.commandInput.Update(msg)
		}
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m.fail(err)
	}
	if cmd.Type == commands.TypeList {
		m.ShowCompleted = cmd.List.All
	}
	return m.run(cmd)
}
