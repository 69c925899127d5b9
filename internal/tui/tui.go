// Package tui is the interactive board client: a board sidebar, the selected board's
// columns, and modals for task details and the board/task forms.
package tui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/api"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/selection"
	"kanban-cli/internal/store"
)

// Deps is what the TUI needs from the session that launched it.
type Deps struct {
	Client    *api.Client
	Selection *selection.Manager
	Prefs     *store.Prefs
	Options   mutate.Options
	Logger    *log.Logger
}

func Run(ctx context.Context, deps Deps) error {
	applyColorProfilePreference()
	m := newAppModel(ctx, deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
