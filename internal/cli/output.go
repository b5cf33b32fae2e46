package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/hooksync/internal/config"
	"github.com/klauern/hooksync/internal/project"
)

// projectFlags are shared by every command operating on a repository.
func projectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base-dir",
			Usage: "The path to the root directory of the project (default: current directory)",
		},
		&cli.StringFlag{
			Name:  "hooks",
			Usage: "The path to the hooks directory, relative to the project root (default: " + project.DefaultHooksDir + ")",
		},
	}
}

// openProject resolves the project and its configuration. An explicit
// --hooks flag wins over the configured staging directory.
func openProject(cmd *cli.Command) (*project.Project, *config.Config, error) {
	root, err := project.New(cmd.String("base-dir"), "")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig(cmd, root.BaseDir())
	if err != nil {
		return nil, nil, err
	}

	hooks := cfg.Hooks.Dir
	if cmd.IsSet("hooks") {
		hooks = cmd.String("hooks")
	}

	p, err := project.New(root.BaseDir(), hooks)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputYAML writes v as YAML.
func outputYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// outputTOML writes v as TOML.
func outputTOML(w io.Writer, v any) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return nil
}

// truncateStr truncates a string to the specified width.
func truncateStr(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
