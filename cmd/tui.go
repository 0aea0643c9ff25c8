package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/filedialog/dialog"
	"github.com/desertthunder/filedialog/internal/provider"
	"github.com/desertthunder/filedialog/internal/shared"
	"github.com/desertthunder/filedialog/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive dialog host.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.Path
	if logPath == "" {
		logPath = "./tmp/filedialog-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.LevelFromString(r.config.Log.Level))
	r.SetLogger(fileLogger)

	store, closeStore, err := r.openStore()
	if err != nil {
		fileLogger.Warn("recent locations unavailable", "error", err)
		store = nil
	} else {
		defer closeStore()
	}

	term := provider.NewTerm(8)
	notifier := &ui.Notifier{}

	bridge, err := dialog.New(dialog.Options{
		Context:       ctx,
		Provider:      term,
		Logger:        shared.WithLogger(fileLogger, "component", "bridge"),
		Wake:          notifier.Wake,
		Registrations: ui.Registrations(),
	})
	if err != nil {
		return fmt.Errorf("failed to build dialog bridge: %w", err)
	}

	model := ui.NewModel(ui.ModelOpts{
		Bridge:   bridge,
		Term:     term,
		Store:    store,
		Logger:   shared.WithLogger(fileLogger, "component", "ui"),
		Defaults: r.config.Dialogs,
		TickRate: r.config.Host.TickRate(),
		History:  r.config.Host.History(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
