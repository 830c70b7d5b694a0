package commands

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/scribe/internal/app"
	"github.com/hay-kot/scribe/internal/dialog"
	"github.com/hay-kot/scribe/internal/printer"
)

type DialogsCmd struct {
	flags  *Flags
	format string
}

// NewDialogsCmd creates a new dialogs command.
func NewDialogsCmd(flags *Flags) *DialogsCmd {
	return &DialogsCmd{flags: flags}
}

// Register adds the dialogs command to the application.
func (cmd *DialogsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "dialogs",
		Usage:       "List dialog templates",
		UsageText:   "scribe dialogs [options]",
		Description: "Lists every dialog class with its buttons, after applying the configured templates file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DialogsCmd) run(ctx context.Context, c *cli.Command) error {
	a, err := app.New(app.Options{Config: cmd.flags.Config})
	if err != nil {
		return err
	}

	registry := a.Dialogs().Registry()
	templates := make([]dialog.Template, 0, len(registry.Classes()))
	for _, class := range registry.Classes() {
		t, err := registry.Instantiate(class)
		if err != nil {
			return err
		}
		templates = append(templates, t)
	}

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(templates)
	}

	p := printer.Ctx(ctx)
	for _, t := range templates {
		p.Section(t.Class)
		for _, b := range t.Buttons {
			var notes []string
			if b.Primary {
				notes = append(notes, "primary")
			}
			p.KeyValue(b.ID, b.Label, strings.Join(notes, ", "))
		}
		p.Printf("")
	}
	return nil
}
