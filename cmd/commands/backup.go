package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gf-haseeb/advanced-todo-system/internal/ops"
)

// NewBackupCommand returns the data-dir archive subcommand.
func NewBackupCommand() *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "Archive the data dir to a tar.gz",
		ArgsUsage: "<archive_path>",
		Action:    runBackup,
	}
}

// NewRestoreCommand returns the archive restore subcommand.
func NewRestoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore the data dir from a tar.gz",
		ArgsUsage: "<archive_path>",
		Action:    runRestore,
	}
}

// NewResaveCommand returns the persist-retry subcommand.
func NewResaveCommand() *cli.Command {
	return &cli.Command{
		Name:   "resave",
		Usage:  "Rewrite the snapshot from the loaded state",
		Action: runResave,
	}
}

func runBackup(_ context.Context, cmd *cli.Command) error {
	archive := cmd.Args().Get(0)
	if archive == "" {
		return fmt.Errorf("usage: todo backup <archive_path>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := ops.ArchiveDataDir(cfg.Storage.DataDir, archive); err != nil {
		return err
	}
	fmt.Printf("Archived %s to %s\n", cfg.Storage.DataDir, archive)
	return nil
}

func runRestore(_ context.Context, cmd *cli.Command) error {
	archive := cmd.Args().Get(0)
	if archive == "" {
		return fmt.Errorf("usage: todo restore <archive_path>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := ops.RestoreDataDir(archive, cfg.Storage.DataDir); err != nil {
		return err
	}
	fmt.Printf("Restored %s into %s\n", archive, cfg.Storage.DataDir)
	return nil
}

func runResave(_ context.Context, cmd *cli.Command) error {
	mgr, cfg, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	if err := mgr.Resave(); err != nil {
		return err
	}
	fmt.Printf("Snapshot written to %s\n", cfg.SnapshotPath())
	return nil
}
