package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
)

const (
	ListingHeader = "=== TODO List ==="
	EmptyListing  = "No tasks"
)

// Styles holds the lipgloss styles for the plain-text listing. The zero
// value renders unstyled text.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Active    lipgloss.Style
	Completed lipgloss.Style
	Summary   lipgloss.Style
}

func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Header: plain, Section: plain, Active: plain, Completed: plain, Summary: plain}
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Section:   lipgloss.NewStyle().Bold(true).Underline(true),
		Active:    lipgloss.NewStyle(),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		Summary:   lipgloss.NewStyle().Faint(true),
	}
}

// RenderListing formats the listing as the sectioned text view:
//
//	=== TODO List ===
//
//	Active Tasks:
//	  [1] - write report
//
//	Completed Tasks:
//	  [2] - buy milk ✓
//
//	Total: 2 tasks (1 active, 1 completed)
func RenderListing(l commands.Listing, st Styles) string {
	if l.Empty() {
		return EmptyListing
	}
	var b strings.Builder
	b.WriteString(st.Header.Render(ListingHeader))
	b.WriteString("\n")

	if len(l.Active) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Section.Render("Active Tasks:"))
		b.WriteString("\n")
		for _, task := range l.Active {
			b.WriteString(st.Active.Render(fmt.Sprintf("  [%d] - %s", task.ID().Value(), task.Title())))
			b.WriteString("\n")
		}
	}

	if l.ShowCompleted && len(l.Completed) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Section.Render("Completed Tasks:"))
		b.WriteString("\n")
		for _, task := range l.Completed {
			b.WriteString(st.Completed.Render(fmt.Sprintf("  [%d] - %s ✓", task.ID().Value(), task.Title())))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(st.Summary.Render(commands.SummaryLine(l)))
	return b.String()
}

// TaskMarkdown describes a single task as a markdown document.
func TaskMarkdown(task model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# [%d] %s\n\n", task.ID().Value(), task.Title())
	fmt.Fprintf(&b, "- **Status:** %s\n", task.Status().Kind())
	fmt.Fprintf(&b, "- **Created:** %s\n", task.CreatedAt().Format(timeLayout))
	if at, ok := task.Status().CompletedAt(); ok {
		fmt.Fprintf(&b, "- **Completed:** %s\n", at.Format(timeLayout))
	}
	return b.String()
}

const timeLayout = "2006-01-02 15:04:05 MST"
