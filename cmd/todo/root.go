package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/storage"
)

type cli struct {
	v          *viper.Viper
	configFile string
	stdout     io.Writer
	stderr     io.Writer
	cfg        config.Config
	logger     *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{v: config.NewViper(), stdout: stdout, stderr: stderr, logger: logging.Discard()}
	root := &cobra.Command{
		Use:   "todo",
		Short: "A small task tracker for the terminal",
		Long: `todo keeps a list of tasks in a local store (~/.todo.json by default).
Tasks are added as active, completed once, and deleted when no longer needed.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup(cmd) },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	c.addPersistentFlags(root)
	root.AddCommand(
		c.addCmd(),
		c.listCmd(),
		c.doneCmd(),
		c.deleteCmd(),
		c.showCmd(),
		c.uiCmd(),
	)
	return root
}

func (c *cli) addPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP(config.KeyFile, "f", "", "store location (default ~/.todo.json, or ~/.todo.db for sqlite)")
	flags.String(config.KeyBackend, string(config.BackendJSON), "storage backend: json, sqlite or memory")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.Bool(config.KeyNoColor, false, "disable styled output")
	flags.StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	for _, name := range []string{config.KeyFile, config.KeyBackend, config.KeyLogLevel, config.KeyNoColor} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}
}

// setup resolves config for the command being run. --format is a local flag
// on the commands that print, so it is bound here rather than at construction.
func (c *cli) setup(cmd *cobra.Command) error {
	if f := cmd.Flags().Lookup(config.KeyFormat); f != nil {
		_ = c.v.BindPFlag(config.KeyFormat, f)
	}
	if err := config.ReadFile(c.v, c.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	logger, err := logging.New(c.stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	if used := c.v.ConfigFileUsed(); used != "" {
		c.logger.Debug("config loaded", "path", used)
	}
	return nil
}

// withRepo opens the configured backend for the duration of fn.
func (c *cli) withRepo(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := c.cfg.ResolveStorePath()
	if err != nil {
		return err
	}
	switch c.cfg.Backend {
	case config.BackendMemory:
		c.logger.Info("memory backend does not persist between runs")
		return fn(ctx, storage.NewMemoryRepository())
	case config.BackendSQLite:
		repo, err := storage.OpenSQLite(path, c.logger)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := repo.Close(); cerr != nil {
				c.logger.Warn("close sqlite store", "path", path, "err", cerr)
			}
		}()
		return fn(ctx, repo)
	default:
		return fn(ctx, storage.NewJSONRepository(path, c.logger))
	}
}

func (c *cli) println(s string) {
	fmt.Fprintln(c.stdout, strings.TrimRight(s, "\n"))
}
