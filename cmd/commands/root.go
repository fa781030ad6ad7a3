package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/gf-haseeb/advanced-todo-system/internal/config"
	"github.com/gf-haseeb/advanced-todo-system/internal/todo"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "Task and list management with JSON-file persistence",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "todo_config.yml",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Override the storage data directory",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewListsCommand(),
			NewTasksCommand(),
			NewResaveCommand(),
			NewBackupCommand(),
			NewRestoreCommand(),
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := cmd.String("data-dir"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	return cfg, nil
}

func newLogger(cmd *cli.Command, cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cmd.Bool("debug") {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if cfg.Log.Pretty || cmd.Bool("debug") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func newManager(cmd *cli.Command) (*todo.Manager, *config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}
	logger := newLogger(cmd, cfg)
	mgr, err := todo.NewManager(cfg.SnapshotPath(), logger)
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}
	return mgr, cfg, logger, nil
}
