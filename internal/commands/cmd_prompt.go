package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/scribe/internal/app"
	"github.com/hay-kot/scribe/internal/core/loop"
	"github.com/hay-kot/scribe/internal/tui"
)

type PromptCmd struct {
	flags *Flags
	title string
	body  string
}

// NewPromptCmd creates a new prompt command.
func NewPromptCmd(flags *Flags) *PromptCmd {
	return &PromptCmd{flags: flags}
}

// Register adds the prompt command to the application.
func (cmd *PromptCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prompt",
		Usage:     "Show a single dialog and print the chosen button",
		UsageText: "scribe prompt <class> [--title TITLE] [--body MARKDOWN]",
		Description: `Shows one dialog of the given class and prints the id of the button that
closed it to stdout. Closing the dialog without a button prints "cancel".

Useful for scripting; see 'scribe dialogs' for the available classes.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "dialog title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "body",
				Aliases:     []string{"b"},
				Usage:       "dialog body (markdown)",
				Destination: &cmd.body,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PromptCmd) run(ctx context.Context, c *cli.Command) error {
	class := c.Args().First()
	if class == "" {
		return errors.New("dialog class is required")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("prompt requires an interactive terminal")
	}

	queue := loop.New()
	a, err := app.New(app.Options{
		Config: cmd.flags.Config,
		Queue:  queue,
		Log:    log.Logger,
	})
	if err != nil {
		return err
	}

	result, err := a.Dialogs().Show(class, cmd.title, cmd.body)
	if err != nil {
		return err
	}

	m := tui.NewPrompt(a.Dialogs(), queue, result, cmd.flags.Config.Editor.MarkdownStyle)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run prompt: %w", err)
	}

	button, err := result.Wait(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, button)
	return err
}
