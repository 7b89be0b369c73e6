package views

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
)

// RenderTable draws the listing as a bordered table, active tasks first.
func RenderTable(l commands.Listing, color bool) string {
	if l.Empty() {
		return EmptyListing
	}
	tw := table.NewWriter()
	style := table.StyleLight
	if color {
		style = table.StyleRounded
	}
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"ID", "Title", "Status", "Created", "Completed"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 60},
	})

	rows := append([]model.Task(nil), l.Active...)
	if l.ShowCompleted {
		rows = append(rows, l.Completed...)
	}
	for _, task := range rows {
		completed := ""
		if at, ok := task.Status().CompletedAt(); ok {
			completed = at.Format(timeLayout)
		}
		tw.AppendRow(table.Row{
			task.ID().Value(),
			task.Title().String(),
			string(task.Status().Kind()),
			task.CreatedAt().Format(timeLayout),
			completed,
		})
	}
	tw.AppendFooter(table.Row{"", commands.SummaryLine(l)})
	return tw.Render()
}
