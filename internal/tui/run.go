package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quill/internal/app"
	"github.com/aretw0/quill/internal/platform"
	storagecycle "github.com/aretw0/quill/pkg/adapters/lifecycle"
)

// Run opens the editor on ws and blocks until the user quits.
func Run(ctx context.Context, ws *platform.Workspace, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clk := newDispatchClock()
	m := NewModel(ctx, ws.Service,
		app.WithClock(clk),
		app.WithAutosaveDelay(ws.AutosaveDelay),
		app.WithLogger(ws.Logger),
	)

	src, ok, err := storagecycle.Watch(ctx, ws.Storage, ws.Persistence.Key())
	switch {
	case err != nil:
		ws.Logger.Warn("storage watch unavailable", "error", err)
	case ok:
		if err := src.Start(ctx); err != nil {
			return fmt.Errorf("failed to start storage watch: %w", err)
		}
		m.WatchEvents(src.Events())
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	clk.attach(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}
