package commands

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/scribe/internal/core/config"
	"github.com/hay-kot/scribe/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config command group to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "scribe config validate [options]",
				Description: "Checks ignore globs, key bindings, the dialog templates file and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationReport is the outcome of a validation run.
type validationReport struct {
	Path     string                     `json:"path"`
	Valid    bool                       `json:"valid"`
	Errors   []reportError              `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

type reportError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func newValidationReport(path string, err error, warnings []config.ValidationWarning) validationReport {
	r := validationReport{Path: path, Valid: err == nil, Warnings: warnings}
	if err == nil {
		return r
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		r.Errors = []reportError{{Message: err.Error()}}
		return r
	}
	for _, fe := range fieldErrs {
		r.Errors = append(r.Errors, reportError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return r
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	report := newValidationReport(cmd.flags.ConfigPath, cfg.ValidateDeep(cmd.flags.ConfigPath), cfg.Warnings())

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(printer.Ctx(ctx), report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func printReport(p *printer.Printer, r validationReport) {
	p.Section(r.Path)
	for _, e := range r.Errors {
		p.FailItem(cmp.Or(e.Field, "config"), e.Message)
	}
	for _, w := range r.Warnings {
		label := w.Category
		if w.Item != "" {
			label += "." + w.Item
		}
		p.WarnItem(label, w.Message)
	}
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		p.CheckItem("config", "no issues found")
	}

	p.Printf("")
	switch {
	case !r.Valid:
		p.Errorf("%d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	case len(r.Warnings) > 0:
		p.Successf("Configuration is valid (%d warning(s))", len(r.Warnings))
	default:
		p.Successf("Configuration is valid")
	}
}
