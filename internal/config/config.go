// Package config provides configuration management for hooksync.
// It supports YAML and TOML configuration files, environment variables, and sensible defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/klauern/hooksync/internal/project"
	"github.com/klauern/hooksync/internal/sync"
	"github.com/klauern/hooksync/internal/util"
)

// Config represents the complete hooksync configuration.
type Config struct {
	// Hooks configures where staged hooks are read from
	Hooks HooksConfig `yaml:"hooks" toml:"hooks" json:"hooks"`

	// Install configures conflict handling during install
	Install InstallConfig `yaml:"install" toml:"install" json:"install"`

	// Backup configures backups of overwritten hooks
	Backup BackupConfig `yaml:"backup" toml:"backup" json:"backup"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" toml:"output" json:"output"`

	sources []string
}

// HooksConfig holds staging directory settings.
type HooksConfig struct {
	// Dir is the staging directory, relative to the repository root
	Dir string `yaml:"dir" toml:"dir" json:"dir"`
	// Exclude lists doublestar patterns of staged entries to ignore
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty"`
}

// InstallConfig holds install settings.
type InstallConfig struct {
	// OnConflict is prompt, skip or overwrite
	OnConflict string `yaml:"on_conflict" toml:"on_conflict" json:"on_conflict"`
	// StopOnConflict ends each pass at the first conflict
	StopOnConflict bool `yaml:"stop_on_conflict" toml:"stop_on_conflict" json:"stop_on_conflict"`
	// Strict turns copy failures into a failed run
	Strict bool `yaml:"strict" toml:"strict" json:"strict"`
}

// BackupConfig holds backup settings.
type BackupConfig struct {
	// Enabled enables backups before a hook is overwritten
	Enabled bool `yaml:"enabled" toml:"enabled" json:"enabled"`
	// Location is the backup directory; empty means .git/hooksync/backups
	Location string `yaml:"location,omitempty" toml:"location,omitempty" json:"location,omitempty"`
	// MaxBackups is the maximum number of backups kept per hook
	MaxBackups int `yaml:"max_backups" toml:"max_backups" json:"max_backups"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default listing format (table, json, yaml)
	Format string `yaml:"format" toml:"format" json:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" toml:"color" json:"color"`
}

// ConflictPolicy is the configured answer to a hook conflict.
type ConflictPolicy string

const (
	// PolicyPrompt asks the user about every conflict.
	PolicyPrompt ConflictPolicy = "prompt"
	// PolicySkip keeps every installed hook.
	PolicySkip ConflictPolicy = "skip"
	// PolicyOverwrite replaces every installed hook.
	PolicyOverwrite ConflictPolicy = "overwrite"
)

// IsValid returns true if the policy is recognized.
func (p ConflictPolicy) IsValid() bool {
	switch p {
	case PolicyPrompt, PolicySkip, PolicyOverwrite:
		return true
	default:
		return false
	}
}

// Decision returns the decision a non-interactive policy stands for.
// PolicyPrompt has none and maps to sync.DecisionSkip.
func (p ConflictPolicy) Decision() sync.Decision {
	if p == PolicyOverwrite {
		return sync.DecisionOverwrite
	}
	return sync.DecisionSkip
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Hooks: HooksConfig{
			Dir: project.DefaultHooksDir,
		},
		Install: InstallConfig{
			OnConflict: string(PolicyPrompt),
		},
		Backup: BackupConfig{
			Enabled:    true,
			MaxBackups: 5,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  "auto",
		},
	}
}

// configFileName is the name of the user config file.
const configFileName = "config.yaml"

// ProjectFileNames are the per-repository config files, in lookup order.
var ProjectFileNames = []string{".hooksync.yaml", ".hooksync.yml", ".hooksync.toml"}

// FilePath returns the path to the user config file.
func FilePath() string {
	return filepath.Join(util.HooksyncConfigPath(), configFileName)
}

// ProjectFilePath returns the first project config file present in baseDir.
func ProjectFilePath(baseDir string) (string, bool) {
	for _, name := range ProjectFileNames {
		path := filepath.Join(baseDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load merges, in increasing priority, the defaults, the user config file,
// the project config file in baseDir and environment overrides. Missing files
// are skipped.
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	if err := cfg.mergeFileIfExists(FilePath()); err != nil {
		return nil, err
	}

	if baseDir != "" {
		if path, ok := ProjectFilePath(baseDir); ok {
			if err := cfg.mergeFile(path); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path over the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// Sources lists the files that were merged into this configuration.
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

func (c *Config) mergeFileIfExists(path string) error {
	err := c.mergeFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// mergeFile decodes path over the current values, picking the format from
// the extension.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 - path is a config file chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.sources = append(c.sources, path)
	return nil
}

// Save writes the configuration to the user config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to path as TOML or YAML, by extension.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = c.TOML()
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// #nosec G306 - config file should be readable by user
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML encodes the configuration as TOML.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern HOOKSYNC_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	// Hooks settings
	if v := os.Getenv("HOOKSYNC_HOOKS_DIR"); v != "" {
		c.Hooks.Dir = v
	}
	if v := os.Getenv("HOOKSYNC_HOOKS_EXCLUDE"); v != "" {
		c.Hooks.Exclude = splitList(v)
	}

	// Install settings
	if v := os.Getenv("HOOKSYNC_ON_CONFLICT"); v != "" {
		c.Install.OnConflict = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("HOOKSYNC_STOP_ON_CONFLICT"); v != "" {
		c.Install.StopOnConflict = parseBool(v)
	}

	// Backup settings
	if v := os.Getenv("HOOKSYNC_BACKUP_ENABLED"); v != "" {
		c.Backup.Enabled = parseBool(v)
	}
	if v := os.Getenv("HOOKSYNC_BACKUP_LOCATION"); v != "" {
		c.Backup.Location = v
	}
	if v := os.Getenv("HOOKSYNC_BACKUP_MAX"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			c.Backup.MaxBackups = n
		}
	}

	// Output settings
	if v := os.Getenv("HOOKSYNC_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitList splits a colon-separated string into its parts.
// Empty segments are filtered out.
func splitList(s string) []string {
	parts := strings.Split(s, ":")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Hooks.Dir == "" {
		return errors.New("hooks.dir must not be empty")
	}
	if filepath.IsAbs(c.Hooks.Dir) {
		return fmt.Errorf("hooks.dir must be relative to the repository root, got %q", c.Hooks.Dir)
	}
	for _, pattern := range c.Hooks.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("hooks.exclude: invalid pattern %q", pattern)
		}
	}
	if !ConflictPolicy(c.Install.OnConflict).IsValid() {
		return fmt.Errorf("install.on_conflict must be prompt, skip or overwrite, got %q", c.Install.OnConflict)
	}
	if c.Backup.MaxBackups < 0 {
		return fmt.Errorf("backup.max_backups must not be negative, got %d", c.Backup.MaxBackups)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be table, json or yaml, got %q", c.Output.Format)
	}
	return nil
}

// ConflictPolicy returns the configured conflict policy, falling back to
// PolicyPrompt when the value is not recognized.
func (c *Config) ConflictPolicy() ConflictPolicy {
	policy := ConflictPolicy(c.Install.OnConflict)
	if policy.IsValid() {
		return policy
	}
	return PolicyPrompt
}

// BackupDir returns the backup directory for p.
func (c *Config) BackupDir(p *project.Project) string {
	if c.Backup.Location != "" {
		return util.ExpandPath(c.Backup.Location, p.BaseDir())
	}
	return util.BackupsPath(p.GitDir())
}

// Exists returns true if a user config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
