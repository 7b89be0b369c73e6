package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/update"
	"github.com/sandeepkv93/todo/internal/views"
)

func (c *cli) execute(ctx context.Context, cmd commands.Command) error {
	return c.withRepo(ctx, func(ctx context.Context, repo storage.Repository) error {
		res, err := commands.Execute(cmd, commands.NewHandlers(ctx, repo))
		if err != nil {
			return err
		}
		c.println(res.Message)
		return nil
	})
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new active task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return c.execute(cmd.Context(), commands.Command{
				Type: commands.TypeAdd,
				Raw:  "add " + title,
				Add:  &commands.AddArgs{Title: title},
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List active tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRepo(cmd.Context(), func(ctx context.Context, repo storage.Repository) error {
				listing, err := commands.List(ctx, repo, all)
				if err != nil {
					return err
				}
				return c.printListing(listing)
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	cmd.Flags().String(config.KeyFormat, string(config.FormatText), "output format: text, table, json or yaml")
	return cmd
}

func (c *cli) printListing(l commands.Listing) error {
	switch c.cfg.Format {
	case config.FormatJSON:
		return views.EncodeJSON(c.stdout, views.NewListingView(l))
	case config.FormatYAML:
		return views.EncodeYAML(c.stdout, views.NewListingView(l))
	case config.FormatTable:
		c.println(views.RenderTable(l, !c.cfg.NoColor))
	default:
		c.println(views.RenderListing(l, views.NewStyles(!c.cfg.NoColor)))
	}
	return nil
}

func (c *cli) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return c.execute(cmd.Context(), commands.Command{
				Type: commands.TypeDone,
				Raw:  "done " + args[0],
				Done: &commands.DoneArgs{ID: id},
			})
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return c.execute(cmd.Context(), commands.Command{
				Type:   commands.TypeDelete,
				Raw:    "delete " + args[0],
				Delete: &commands.DeleteArgs{ID: id},
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			if c.cfg.Format == config.FormatTable {
				return fmt.Errorf("show: format %q is not supported (want text, json or yaml)", c.cfg.Format)
			}
			return c.withRepo(cmd.Context(), func(ctx context.Context, repo storage.Repository) error {
				task, err := commands.Show(ctx, repo, id)
				if err != nil {
					return err
				}
				switch c.cfg.Format {
				case config.FormatJSON:
					return views.EncodeJSON(c.stdout, views.NewTaskView(task))
				case config.FormatYAML:
					return views.EncodeYAML(c.stdout, views.NewTaskView(task))
				}
				md := views.TaskMarkdown(task)
				if c.cfg.NoColor {
					c.println(md)
					return nil
				}
				c.println(views.RenderMarkdown(md))
				return nil
			})
		},
	}
	cmd.Flags().String(config.KeyFormat, string(config.FormatText), "output format: text, json or yaml")
	return cmd
}

func (c *cli) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRepo(cmd.Context(), func(ctx context.Context, repo storage.Repository) error {
				program := tea.NewProgram(
					update.NewModel(ctx, repo),
					tea.WithAltScreen(),
					tea.WithContext(ctx),
					tea.WithOutput(c.stdout),
				)
				_, err := program.Run()
				return err
			})
		},
	}
}
