package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"built"`
	GoVersion string `json:"go"`
}

// currentBuild fills in the commit from the embedded VCS stamp when the
// binary was built without ldflags.
func currentBuild() buildInfo {
	info := buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if info.Commit != "unknown" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				info.Commit = s.Value
			}
		}
	}
	return info
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version and build information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "short",
				Usage: "Print only the version number",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print build information as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			info := currentBuild()
			switch {
			case cmd.Bool("short"):
				fmt.Println(info.Version)
			case cmd.Bool("json"):
				return outputJSON(os.Stdout, info)
			default:
				fmt.Printf("hooksync version %s\n", info.Version)
				fmt.Printf("  commit: %s\n", info.Commit)
				fmt.Printf("  built: %s\n", info.BuildDate)
				fmt.Printf("  go: %s\n", info.GoVersion)
			}
			return nil
		},
	}
}
