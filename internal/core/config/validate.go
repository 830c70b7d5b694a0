package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/keymap"
	"github.com/hay-kot/scribe/internal/dialog"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks glob syntax, the templates file, and file access.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(fe.Field, fe.Err)
			}
		} else {
			errs = errs.Append("", err)
		}
	}

	errs = c.validateFileAccess(errs, configPath)
	errs = c.validateIgnorePatterns(errs)
	errs = c.validateTemplates(errs)
	errs = c.validateKeymap(errs)

	return errs.ToError()
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(errs criterio.FieldErrorsBuilder, configPath string) criterio.FieldErrorsBuilder {
	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		}
	}

	return errs
}

func (c *Config) validateIgnorePatterns(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for i, pattern := range c.Project.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("project.ignore[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs
}

// validateTemplates checks that the user templates file parses.
func (c *Config) validateTemplates(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	if c.Dialogs.TemplatesFile == "" {
		return errs
	}

	if _, err := dialog.LoadTemplatesFile(c.Dialogs.TemplatesFile); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append("dialogs.templates_file: "+fe.Field, fe.Err)
			}
			return errs
		}
		errs = errs.Append("dialogs.templates_file", err)
	}
	return errs
}

// validateKeymap builds the keymap for the configured platform.
func (c *Config) validateKeymap(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	if _, err := keymap.Create(c.Bindings(), c.Platform); err != nil {
		errs = errs.Append("keybindings", err)
	}
	return errs
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	km, err := keymap.Create(c.Bindings(), c.Platform)
	if err == nil {
		for _, id := range []string{command.FileSave, command.FileCloseWindow} {
			if _, ok := km.KeyFor(id); !ok {
				warnings = append(warnings, ValidationWarning{
					Category: "Keybindings",
					Item:     id,
					Message:  fmt.Sprintf("no key bound to %s on %s", id, c.Platform),
				})
			}
		}
	}

	if !c.Editor.WatchFiles {
		warnings = append(warnings, ValidationWarning{
			Category: "Editor",
			Item:     "watch_files",
			Message:  "file watching disabled; external changes are only detected on focus",
		})
	}

	return warnings
}
