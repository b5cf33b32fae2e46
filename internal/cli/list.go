package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hooksync/internal/sync"
	"github.com/klauern/hooksync/internal/ui"
)

// planRow is the serialized form of a sync.PlanEntry.
type planRow struct {
	Hook   string `json:"hook" yaml:"hook"`
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func listCommand() *cli.Command {
	flags := append(projectFlags(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: table, json, yaml (default: from config)",
		},
	)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls", "status"},
		Usage:   "Show what install would do with every staged hook",
		UsageText: `hooksync list [options]
   hooksync list
   hooksync list --format json`,
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			p, cfg, err := openProject(cmd)
			if err != nil {
				return err
			}
			if err := applyColorMode(cmd, cfg); err != nil {
				return err
			}

			format := cfg.Output.Format
			if cmd.IsSet("format") {
				format = cmd.String("format")
			}

			syncer, err := sync.New(p, sync.Options{Exclude: cfg.Hooks.Exclude})
			if err != nil {
				return err
			}
			entries, err := syncer.Plan()
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return outputPlanTable(os.Stdout, entries)
			case "json":
				return outputJSON(os.Stdout, planRows(entries))
			case "yaml":
				return outputYAML(os.Stdout, planRows(entries))
			default:
				return fmt.Errorf("unsupported format: %s (use table, json, or yaml)", format)
			}
		},
	}
}

func planRows(entries []sync.PlanEntry) []planRow {
	rows := make([]planRow, 0, len(entries))
	for _, e := range entries {
		row := planRow{Hook: e.Hook, Status: string(e.Status)}
		if e.Err != nil {
			row.Error = e.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// outputPlanTable prints one line per staged entry.
func outputPlanTable(w io.Writer, entries []sync.PlanEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No hooks staged.")
		return err
	}

	fmt.Fprintf(w, "%-30s %-12s\n", "HOOK", "STATUS")
	fmt.Fprintf(w, "%-30s %-12s\n", strings.Repeat("-", 30), strings.Repeat("-", 12))

	counts := make(map[sync.PlanStatus]int)
	for _, e := range entries {
		counts[e.Status]++
		fmt.Fprintf(w, "%-30s %s\n", truncateStr(e.Hook, 30), planStatus(e))
	}

	fmt.Fprintf(w, "\nTotal: %d entry(ies), %d new, %d conflict(s), %d up to date\n",
		len(entries), counts[sync.PlanNew], counts[sync.PlanConflict], counts[sync.PlanUpToDate])
	return nil
}

func planStatus(e sync.PlanEntry) string {
	switch e.Status {
	case sync.PlanNew:
		return ui.Success(string(e.Status))
	case sync.PlanConflict:
		return ui.Warning(string(e.Status))
	case sync.PlanUnreadable:
		if e.Err != nil {
			return ui.Error(fmt.Sprintf("%s (%v)", e.Status, e.Err))
		}
		return ui.Error(string(e.Status))
	default:
		return ui.Dim(string(e.Status))
	}
}
