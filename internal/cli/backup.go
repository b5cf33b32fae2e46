package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/klauern/hooksync/internal/backup"
	"github.com/klauern/hooksync/internal/ui"
)

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Manage backups of overwritten hooks",
		Commands: []*cli.Command{
			backupListCommand(),
			backupRestoreCommand(),
			backupDeleteCommand(),
		},
	}
}

// openBackupStore opens the backup store configured for the project.
func openBackupStore(cmd *cli.Command) (*backup.Store, error) {
	p, cfg, err := openProject(cmd)
	if err != nil {
		return nil, err
	}
	return backup.NewStore(afero.NewOsFs(), cfg.BackupDir(p), cfg.Backup.MaxBackups), nil
}

func backupListCommand() *cli.Command {
	flags := append(projectFlags(),
		&cli.StringFlag{
			Name:  "hook",
			Usage: "Only list backups of this hook",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "table",
			Usage:   "Output format: table, json",
		},
	)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List backups, newest first",
		Flags:   flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			store, err := openBackupStore(cmd)
			if err != nil {
				return err
			}
			backups, err := store.List(cmd.String("hook"))
			if err != nil {
				return err
			}

			switch format := cmd.String("format"); format {
			case "table":
				stats, err := store.Stats()
				if err != nil {
					return err
				}
				return outputBackupTable(os.Stdout, backups, stats)
			case "json":
				return outputJSON(os.Stdout, backups)
			default:
				return fmt.Errorf("unsupported format: %s (use table or json)", format)
			}
		},
	}
}

func outputBackupTable(w io.Writer, backups []backup.Metadata, stats *backup.Stats) error {
	if len(backups) == 0 {
		_, err := fmt.Fprintln(w, "No backups found.")
		return err
	}

	fmt.Fprintf(w, "%-45s %-20s %-20s %8s\n", "ID", "HOOK", "CREATED", "SIZE")
	fmt.Fprintf(w, "%-45s %-20s %-20s %8s\n",
		strings.Repeat("-", 45), strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 8))
	for _, b := range backups {
		fmt.Fprintf(w, "%-45s %-20s %-20s %8s\n",
			truncateStr(b.ID, 45),
			truncateStr(b.Hook, 20),
			b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.IBytes(uint64(b.Size)))
	}

	fmt.Fprintf(w, "\nTotal: %d backup(s) across %d hook(s), %s\n",
		stats.TotalBackups, len(stats.BackupsByHook), humanize.IBytes(uint64(stats.TotalSize)))
	return nil
}

func backupRestoreCommand() *cli.Command {
	flags := append(projectFlags(),
		&cli.StringFlag{
			Name:  "target",
			Usage: "Restore to this path instead of the original location",
		},
	)

	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore a backed up hook",
		UsageText: "hooksync backup restore [options] <backup-id>",
		Flags:     flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			id, err := backupID(cmd)
			if err != nil {
				return err
			}
			store, err := openBackupStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Restore(id, cmd.String("target")); err != nil {
				return fmt.Errorf("failed to restore backup %s: %w", id, err)
			}
			fmt.Println(ui.StatusSuccess("Restored " + id))
			return nil
		},
	}
}

func backupDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a backup",
		UsageText: "hooksync backup delete [options] <backup-id>",
		Flags:     projectFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			id, err := backupID(cmd)
			if err != nil {
				return err
			}
			store, err := openBackupStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Delete(id); err != nil {
				return fmt.Errorf("failed to delete backup %s: %w", id, err)
			}
			fmt.Println(ui.StatusSuccess("Deleted " + id))
			return nil
		},
	}
}

func backupID(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("exactly one backup ID is required")
	}
	return cmd.Args().First(), nil
}
