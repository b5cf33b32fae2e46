package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hooksync/internal/config"
	"github.com/klauern/hooksync/internal/project"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage hooksync configuration",
		Commands: []*cli.Command{
			configShowCommand(),
			configPathCommand(),
			configInitCommand(),
		},
	}
}

func configShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Display the effective configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base-dir",
				Usage: "The project whose configuration file is merged (default: current directory)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format: yaml, json, toml",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			root, err := project.New(cmd.String("base-dir"), "")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, root.BaseDir())
			if err != nil {
				return err
			}

			switch format := cmd.String("format"); format {
			case "yaml":
				return outputYAML(os.Stdout, cfg)
			case "json":
				return outputJSON(os.Stdout, cfg)
			case "toml":
				return outputTOML(os.Stdout, cfg)
			default:
				return fmt.Errorf("unsupported format: %s (use yaml, json, or toml)", format)
			}
		},
	}
}

func configPathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Show the configuration file locations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base-dir",
				Usage: "The project whose configuration file is looked up (default: current directory)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			status := "not found"
			if config.Exists() {
				status = "exists"
			}
			fmt.Printf("User config:    %s (%s)\n", config.FilePath(), status)

			root, err := project.New(cmd.String("base-dir"), "")
			if err != nil {
				return err
			}
			if path, ok := config.ProjectFilePath(root.BaseDir()); ok {
				fmt.Printf("Project config: %s\n", path)
			} else {
				fmt.Printf("Project config: none in %s\n", root.BaseDir())
			}
			return nil
		},
	}
}

func configInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a configuration file with the default settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "project",
				Usage: "Write " + config.ProjectFileNames[0] + " in the project instead of the user config",
			},
			&cli.StringFlag{
				Name:  "base-dir",
				Usage: "The project root used with --project (default: current directory)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := config.FilePath()
			if cmd.Bool("project") {
				root, err := project.New(cmd.String("base-dir"), "")
				if err != nil {
					return err
				}
				path = filepath.Join(root.BaseDir(), config.ProjectFileNames[0])
			}

			if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to inspect %s: %w", path, err)
			}

			if err := config.Default().SaveToPath(path); err != nil {
				return err
			}
			fmt.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}
}
