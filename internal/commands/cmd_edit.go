package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/scribe/internal/app"
	"github.com/hay-kot/scribe/internal/core/loop"
	"github.com/hay-kot/scribe/internal/store/jsonfile"
	"github.com/hay-kot/scribe/internal/tui"
)

type EditCmd struct {
	flags   *Flags
	noWatch bool
}

// NewEditCmd creates the editor command. It is the default action of the
// root command.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the editor flags for registration on the root command.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not watch open files for external changes",
			Sources:     cli.EnvVars("SCRIBE_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Run opens the editor on the path given as the first argument.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cmd.noWatch {
		cfg.Editor.WatchFiles = false
	}

	queue := loop.New()
	a, err := app.New(app.Options{
		Config: cfg,
		Queue:  queue,
		Recent: jsonfile.NewRecentStore(cfg.RecentFile(), cfg.Project.RecentLimit),
		Log:    log.Logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(ctx, c.Args().First()); err != nil {
		return fmt.Errorf("start editor: %w", err)
	}

	p := tea.NewProgram(tui.New(ctx, a),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()

	a.Shutdown()
	queue.Drain()

	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}
