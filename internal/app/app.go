// Package app wires the editor together: it loads the project, registers the
// file commands, builds menus and installs the keymap, then keeps open
// documents in sync with the disk.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/config"
	"github.com/hay-kot/scribe/internal/core/document"
	"github.com/hay-kot/scribe/internal/core/keymap"
	"github.com/hay-kot/scribe/internal/core/loop"
	"github.com/hay-kot/scribe/internal/core/menu"
	"github.com/hay-kot/scribe/internal/core/project"
	"github.com/hay-kot/scribe/internal/dialog"
)

// Hooks connect the app to its host.
type Hooks struct {
	// Quit is called once every document has been dealt with after a close
	// window request.
	Quit func()
	// PromptPath asks the user for a path and re-executes commandID with it.
	// It is called when file.open, project.open or a save of an untitled
	// document runs without a path argument.
	PromptPath func(commandID string)
}

// Options configure a new App.
type Options struct {
	Config *config.Config
	Queue  *loop.Queue
	Recent project.RecentStore // optional
	Hooks  Hooks
	Log    zerolog.Logger
}

var menuSpecs = []menu.Spec{
	{
		ID:    "file",
		Label: "File",
		Commands: []string{
			command.FileNew, command.FileOpen, command.FileSave, command.FileClose,
			command.FileReload, command.FileCloseWindow, command.AppQuit,
		},
	},
	{
		ID:       "project",
		Label:    "Project",
		Commands: []string{command.ProjectOpen},
	},
}

// App is the editor shell. All methods run on the event loop goroutine.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	queue  *loop.Queue
	recent project.RecentStore
	hooks  Hooks

	dialogs  *dialog.Manager
	commands *command.Manager
	keys     *keymap.Manager
	projects *project.Manager
	docs     *document.Manager
	watcher  *document.Watcher
	menus    []menu.Menu

	stopWatcher context.CancelFunc
	syncing     bool
	resync      bool
	closing     bool
	status      string
	startup     time.Duration
}

// New builds the app and its managers. Dialog templates from the configured
// templates file replace the built-in ones class by class.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("new app: config is required")
	}
	if opts.Queue == nil {
		opts.Queue = loop.New()
	}

	registry, err := dialog.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	if path := opts.Config.Dialogs.TemplatesFile; path != "" {
		templates, err := dialog.LoadTemplatesFile(path)
		if err != nil {
			return nil, fmt.Errorf("load dialog templates: %w", err)
		}
		for _, t := range templates {
			if err := registry.Override(t); err != nil {
				return nil, err
			}
		}
	}

	log := opts.Log
	commands := command.NewManager(log.With().Str("component", "commands").Logger())

	a := &App{
		cfg:      opts.Config,
		log:      log.With().Str("component", "app").Logger(),
		queue:    opts.Queue,
		recent:   opts.Recent,
		hooks:    opts.Hooks,
		dialogs:  dialog.NewManager(registry, opts.Queue, log.With().Str("component", "dialogs").Logger()),
		commands: commands,
		keys:     keymap.NewManager(commands, log.With().Str("component", "keymap").Logger()),
		projects: project.NewManager(project.Options{
			Ignore:   opts.Config.Project.Ignore,
			MaxFiles: opts.Config.Project.MaxFiles,
		}, log.With().Str("component", "project").Logger()),
		docs: document.NewManager(log.With().Str("component", "documents").Logger()),
	}
	return a, nil
}

// Start runs the bootstrap sequence. path may name a project directory or a
// file, in which case its directory becomes the project and the file is
// opened. An empty path uses the working directory.
func (a *App) Start(ctx context.Context, path string) error {
	start := time.Now()

	root, file, err := splitTarget(path)
	if err != nil {
		return err
	}

	if err := a.loadProject(ctx, root); err != nil {
		return err
	}

	if err := a.registerCommands(); err != nil {
		return err
	}

	km, err := keymap.Create(a.cfg.Bindings(), a.cfg.Platform)
	if err != nil {
		return fmt.Errorf("create keymap: %w", err)
	}
	a.keys.Install(km)
	a.menus = menu.Build(menuSpecs, a.commands, km)

	if a.cfg.Editor.WatchFiles {
		if err := a.startWatcher(ctx); err != nil {
			a.log.Warn().Err(err).Msg("file watching disabled")
		}
	}

	if file != "" {
		if err := a.commands.Execute(ctx, command.FileOpen, file); err != nil {
			return err
		}
	}

	a.startup = time.Since(start)
	a.log.Info().
		Dur("startup", a.startup).
		Int("commands", len(a.commands.List())).
		Int("menus", len(a.menus)).
		Msg("app started")
	return nil
}

// splitTarget resolves the CLI path argument into a project root and an
// optional file to open.
func splitTarget(path string) (root, file string, err error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", path, err)
	}
	if info.IsDir() {
		return abs, "", nil
	}
	return filepath.Dir(abs), abs, nil
}

func (a *App) loadProject(ctx context.Context, root string) error {
	p, err := a.projects.Load(ctx, root)
	if err != nil {
		return err
	}
	if a.recent != nil {
		if err := a.recent.Touch(ctx, p.Root); err != nil {
			a.log.Warn().Err(err).Msg("failed to record recent project")
		}
	}
	return nil
}

func (a *App) startWatcher(ctx context.Context) error {
	w, err := document.NewWatcher(a.log.With().Str("component", "watcher").Logger(), func(string) {
		a.queue.Defer(a.SyncOpenDocuments)
	})
	if err != nil {
		return err
	}

	wctx, cancel := context.WithCancel(ctx)
	a.watcher = w
	a.stopWatcher = cancel
	go func() {
		if err := w.Run(wctx); err != nil && wctx.Err() == nil {
			a.log.Error().Err(err).Msg("watcher stopped")
		}
	}()
	return nil
}

// Shutdown cancels every open dialog of a reserved class and stops the
// watcher. It returns the number of dialogs cancelled.
func (a *App) Shutdown() int {
	cancelled := 0
	for _, class := range dialog.ReservedClasses {
		cancelled += a.dialogs.CancelAll(class)
	}
	if a.stopWatcher != nil {
		a.stopWatcher()
		a.stopWatcher = nil
	}
	a.log.Debug().Int("cancelled", cancelled).Msg("app shut down")
	return cancelled
}

// SetHooks replaces the host hooks. Hosts that are built after the app use
// it to connect themselves.
func (a *App) SetHooks(h Hooks) { a.hooks = h }

// Dialogs returns the dialog manager.
func (a *App) Dialogs() *dialog.Manager { return a.dialogs }

// Commands returns the command dispatcher.
func (a *App) Commands() *command.Manager { return a.commands }

// Keys returns the key binding manager.
func (a *App) Keys() *keymap.Manager { return a.keys }

// Projects returns the project manager.
func (a *App) Projects() *project.Manager { return a.projects }

// Documents returns the working set.
func (a *App) Documents() *document.Manager { return a.docs }

// Menus returns the menus built at startup.
func (a *App) Menus() []menu.Menu { return a.menus }

// Queue returns the event loop queue.
func (a *App) Queue() *loop.Queue { return a.queue }

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Startup returns how long Start took.
func (a *App) Startup() time.Duration { return a.startup }

// Status returns the last status line message.
func (a *App) Status() string { return a.status }

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}
