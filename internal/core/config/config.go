// Package config handles configuration loading and validation for scribe.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/keymap"
)

// defaultKeybindings mirrors the editor's global keymap. User bindings are
// appended after these, so a user binding for the same key wins.
var defaultKeybindings = []Keybinding{
	{Key: "Ctrl-N", Command: command.FileNew},
	{Key: "Ctrl-O", Command: command.FileOpen},
	{Key: "Ctrl-S", Command: command.FileSave},
	{Key: "Ctrl-W", Command: command.FileClose},
	{Key: "Ctrl-R", Command: command.FileReload, Platform: keymap.PlatformMac},
	{Key: "F5", Command: command.FileReload, Platform: keymap.PlatformWin},
	{Key: "F5", Command: command.FileReload, Platform: keymap.PlatformLinux},
	{Key: "Ctrl-P", Command: command.ProjectOpen},
	{Key: "Ctrl-Q", Command: command.FileCloseWindow},
}

// Config holds the application configuration.
type Config struct {
	Platform    string        `yaml:"platform"`
	Project     ProjectConfig `yaml:"project"`
	Editor      EditorConfig  `yaml:"editor"`
	Dialogs     DialogsConfig `yaml:"dialogs"`
	Keybindings []Keybinding  `yaml:"keybindings"`
	DataDir     string        `yaml:"-"` // set by caller, not from config file
}

// ProjectConfig controls how project trees are scanned.
type ProjectConfig struct {
	// Ignore holds doublestar patterns matched against slash-separated paths
	// relative to the project root.
	Ignore      []string `yaml:"ignore"`
	MaxFiles    int      `yaml:"max_files"`
	RecentLimit int      `yaml:"recent_limit"`
}

// EditorConfig holds editor behavior settings.
type EditorConfig struct {
	TabWidth      int    `yaml:"tab_width"`
	WatchFiles    bool   `yaml:"watch_files"`
	MarkdownStyle string `yaml:"markdown_style"` // glamour style for dialog content
}

// DialogsConfig points at optional user dialog templates.
type DialogsConfig struct {
	// TemplatesFile adds or overrides dialog classes.
	TemplatesFile string `yaml:"templates_file"`
}

// Keybinding maps a key descriptor to a command id.
type Keybinding struct {
	Key      string `yaml:"key"`
	Command  string `yaml:"command"`
	Platform string `yaml:"platform"` // empty = all platforms
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Platform: keymap.CurrentPlatform(),
		Project: ProjectConfig{
			Ignore: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
				"**/*.tmp",
			},
			MaxFiles:    10000,
			RecentLimit: 10,
		},
		Editor: EditorConfig{
			TabWidth:      4,
			WatchFiles:    true,
			MarkdownStyle: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Platform == "" {
		c.Platform = defaults.Platform
	}
	if c.Project.MaxFiles == 0 {
		c.Project.MaxFiles = defaults.Project.MaxFiles
	}
	if c.Project.RecentLimit == 0 {
		c.Project.RecentLimit = defaults.Project.RecentLimit
	}
	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.MarkdownStyle == "" {
		c.Editor.MarkdownStyle = defaults.Editor.MarkdownStyle
	}
}

// mergeKeybindings returns defaults followed by user bindings.
func mergeKeybindings(defaults, user []Keybinding) []Keybinding {
	result := make([]Keybinding, 0, len(defaults)+len(user))
	result = append(result, defaults...)
	result = append(result, user...)
	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}
	if !keymap.IsPlatform(c.Platform) {
		errs = errs.Append("platform", fmt.Errorf("unknown platform %q (expected mac, win or linux)", c.Platform))
	}
	if c.Project.MaxFiles < 1 {
		errs = errs.Append("project.max_files", fmt.Errorf("must be at least 1"))
	}
	if c.Project.RecentLimit < 1 {
		errs = errs.Append("project.recent_limit", fmt.Errorf("must be at least 1"))
	}
	if c.Editor.TabWidth < 1 {
		errs = errs.Append("editor.tab_width", fmt.Errorf("must be at least 1"))
	}

	for i, kb := range c.Keybindings {
		field := fmt.Sprintf("keybindings[%d]", i)
		if _, err := keymap.Normalize(kb.Key); err != nil {
			errs = errs.Append(field+".key", err)
		}
		if !command.IsBuiltin(kb.Command) {
			errs = errs.Append(field+".command", fmt.Errorf("unknown command %q", kb.Command))
		}
		if kb.Platform != "" && !keymap.IsPlatform(kb.Platform) {
			errs = errs.Append(field+".platform", fmt.Errorf("unknown platform %q", kb.Platform))
		}
	}

	return errs.ToError()
}

// Bindings converts the configured keybindings for the keymap package.
func (c *Config) Bindings() []keymap.Binding {
	bindings := make([]keymap.Binding, len(c.Keybindings))
	for i, kb := range c.Keybindings {
		bindings[i] = keymap.Binding{Key: kb.Key, Command: kb.Command, Platform: kb.Platform}
	}
	return bindings
}

// RecentFile returns the path to the recent projects JSON file.
func (c *Config) RecentFile() string {
	return filepath.Join(c.DataDir, "recent.json")
}
