package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/klauern/hooksync/internal/backup"
	"github.com/klauern/hooksync/internal/config"
	"github.com/klauern/hooksync/internal/logging"
	"github.com/klauern/hooksync/internal/sync"
	"github.com/klauern/hooksync/internal/ui"
	"github.com/klauern/hooksync/internal/ui/tui"
)

func installCommand() *cli.Command {
	flags := append(projectFlags(),
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Overwrite every conflicting hook without asking",
		},
		&cli.BoolFlag{
			Name:  "skip-conflicts",
			Usage: "Keep every conflicting installed hook without asking",
		},
		&cli.BoolFlag{
			Name:  "tui",
			Usage: "Resolve conflicts with an interactive terminal UI",
		},
		&cli.BoolFlag{
			Name:  "stop-on-conflict",
			Usage: "End each pass at the first conflict instead of copying the remaining hooks first",
		},
		&cli.BoolFlag{
			Name:  "no-backup",
			Usage: "Do not back up installed hooks before overwriting them",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"d"},
			Usage:   "Show what would be installed without modifying files",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail when a hook could not be copied",
		},
	)

	return &cli.Command{
		Name:      "install",
		Usage:     "Install git hooks for the current project",
		UsageText: "hooksync install [options]",
		Description: `Copy every hook in the staging directory into .git/hooks.

   When an installed hook differs from the staged one you are asked whether
   to overwrite it, skip it or show the differences first. Identical hooks
   are left alone.

   Examples:
     hooksync install
     hooksync install --hooks scripts/hooks
     hooksync install --force
     hooksync install --dry-run`,
		Flags:  flags,
		Action: runInstall,
	}
}

func runInstall(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("force") && cmd.Bool("skip-conflicts") {
		return errors.New("--force and --skip-conflicts cannot be used together")
	}

	p, cfg, err := openProject(cmd)
	if err != nil {
		return err
	}
	if err := applyColorMode(cmd, cfg); err != nil {
		return err
	}

	opts := sync.Options{
		Exclude:        cfg.Hooks.Exclude,
		StopOnConflict: cfg.Install.StopOnConflict || cmd.Bool("stop-on-conflict"),
	}
	dryRun := cmd.Bool("dry-run")
	if cfg.Backup.Enabled && !cmd.Bool("no-backup") && !dryRun {
		opts.Backuper = backup.NewStore(afero.NewOsFs(), cfg.BackupDir(p), cfg.Backup.MaxBackups)
	}

	syncer, err := sync.New(p, opts)
	if err != nil {
		return err
	}

	if dryRun {
		entries, err := syncer.Plan()
		if err != nil {
			return fmt.Errorf("an error occurred while copying git hooks: %w", err)
		}
		fmt.Println("DRY RUN: no files will be modified")
		return outputPlanTable(os.Stdout, entries)
	}

	resolver := chooseResolver(cmd, cfg)
	logging.Debug("starting install",
		logging.Path(p.BaseDir()),
		slog.String("resolver", fmt.Sprintf("%T", resolver)),
	)

	report, err := sync.NewDriver(syncer, resolver).Run(ctx)
	if err != nil {
		return fmt.Errorf("an error occurred while copying git hooks: %w", err)
	}

	printReport(report)

	if cfg.Install.Strict || cmd.Bool("strict") {
		return report.FailureError()
	}
	return nil
}

// chooseResolver picks the decision source for conflicts. Flags win over the
// configured policy; prompting uses the TUI only on a terminal.
func chooseResolver(cmd *cli.Command, cfg *config.Config) sync.Resolver {
	switch {
	case cmd.Bool("force"):
		return sync.NewPolicyResolver(sync.DecisionOverwrite)
	case cmd.Bool("skip-conflicts"):
		return sync.NewPolicyResolver(sync.DecisionSkip)
	}

	if policy := cfg.ConflictPolicy(); policy != config.PolicyPrompt {
		return sync.NewPolicyResolver(policy.Decision())
	}

	if cmd.Bool("tui") && ui.IsTerminal(os.Stdin) {
		return tui.NewResolver()
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// printReport lists the copied hooks. A run that copied nothing prints
// nothing but warnings.
func printReport(report *sync.Report) {
	for _, f := range report.DiffFailures {
		fmt.Fprintf(os.Stderr, "%s\n", ui.StatusWarning(fmt.Sprintf("could not show differences for %s, skipped: %v", f.Hook, f.Err)))
	}
	for _, f := range report.Failed {
		fmt.Fprintf(os.Stderr, "%s\n", ui.StatusWarning(fmt.Sprintf("failed to copy %s: %v", f.Hook, f.Err)))
	}

	if len(report.Copied) == 0 {
		return
	}

	fmt.Println(ui.Header("Copied git hooks:"))
	for _, hook := range report.Copied {
		fmt.Printf("  %s\n", ui.StatusSuccess(hook))
	}
}
