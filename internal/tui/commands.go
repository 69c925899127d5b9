package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/selection"
)

// Network work runs inside tea.Cmd goroutines. Each command returns the selection snapshot
// it ended with; Update applies it only when it is not older than what is on screen.

func (m appModel) loadCmd(preferredID string) tea.Cmd {
	ctx, sel := m.ctx, m.deps.Selection
	return func() tea.Msg {
		err := sel.Load(ctx, preferredID)
		return stateMsg{op: "load", state: sel.State(), err: err}
	}
}

func (m appModel) refreshCmd() tea.Cmd {
	ctx, sel := m.ctx, m.deps.Selection
	return func() tea.Msg {
		err := sel.Refresh(ctx)
		return stateMsg{op: "reload", state: sel.State(), err: err}
	}
}

func (m appModel) selectCmd(id string) tea.Cmd {
	ctx, sel, prefs, logger := m.ctx, m.deps.Selection, m.deps.Prefs, m.logger
	return func() tea.Msg {
		err := sel.Select(ctx, id)
		if err == nil && prefs != nil {
			if perr := prefs.SetLastBoardID(ctx, id); perr != nil {
				logger.Printf("tui: save last board: %v", perr)
			}
		}
		return stateMsg{op: "select board", state: sel.State(), err: err}
	}
}

// mutateCmd runs do and, when it succeeded, follow (a selection transition; Refresh when
// nil). Failures are logged; alert is attached for destructive operations.
func (m appModel) mutateCmd(op, alert string, do func(context.Context) error, follow func(context.Context) error) tea.Cmd {
	ctx, sel, logger := m.ctx, m.deps.Selection, m.logger
	if follow == nil {
		follow = sel.Refresh
	}
	return func() tea.Msg {
		if err := do(ctx); err != nil {
			logger.Printf("tui: %s: %v", op, err)
			return mutationMsg{op: op, state: sel.State(), err: err, alert: alert}
		}
		if err := follow(ctx); err != nil && !errors.Is(err, selection.ErrSuperseded) {
			logger.Printf("tui: %s: reload: %v", op, err)
		}
		return mutationMsg{op: op, state: sel.State()}
	}
}

func (m appModel) createBoardCmd(form forms.BoardForm) tea.Cmd {
	c, sel, prefs := m.deps.Client, m.deps.Selection, m.deps.Prefs
	var created model.Board
	return m.mutateCmd("create board", "",
		func(ctx context.Context) error {
			b, err := mutate.CreateBoard(ctx, c, form)
			created = b
			return err
		},
		func(ctx context.Context) error {
			// The new board is not in the current list yet: re-list, then select it.
			if err := sel.Refresh(ctx); err != nil && errors.Is(err, selection.ErrSuperseded) {
				return err
			}
			if err := sel.Select(ctx, created.ID); err != nil {
				return err
			}
			if prefs != nil {
				return prefs.SetLastBoardID(ctx, created.ID)
			}
			return nil
		})
}

func (m appModel) editBoardCmd(board model.Board, form forms.BoardForm) tea.Cmd {
	c, opts := m.deps.Client, m.deps.Options
	return m.mutateCmd("edit board", "", func(ctx context.Context) error {
		return mutate.EditBoard(ctx, c, board, form, opts)
	}, nil)
}

func (m appModel) deleteBoardCmd(board model.Board) tea.Cmd {
	c, opts, sel, prefs := m.deps.Client, m.deps.Options, m.deps.Selection, m.deps.Prefs
	return m.mutateCmd("delete board", alertDeleteBoard,
		func(ctx context.Context) error {
			return mutate.DeleteBoard(ctx, c, board, opts)
		},
		func(ctx context.Context) error {
			err := sel.RemoveBoard(ctx, board.ID)
			if errors.Is(err, selection.ErrSuperseded) {
				return err
			}
			if prefs != nil {
				if perr := prefs.SetLastBoardID(ctx, sel.State().SelectedBoardID); perr != nil {
					return errors.Join(err, perr)
				}
			}
			return err
		})
}

func (m appModel) createTaskCmd(board model.Board, form forms.TaskForm) tea.Cmd {
	c := m.deps.Client
	return m.mutateCmd("create task", "", func(ctx context.Context) error {
		_, err := mutate.CreateTask(ctx, c, board, form)
		return err
	}, nil)
}

func (m appModel) editTaskCmd(board model.Board, task model.Task, form forms.TaskForm) tea.Cmd {
	c, opts := m.deps.Client, m.deps.Options
	return m.mutateCmd("edit task", "", func(ctx context.Context) error {
		return mutate.EditTask(ctx, c, board, task, form, opts)
	}, nil)
}

func (m appModel) moveTaskCmd(board model.Board, task model.Task, column string) tea.Cmd {
	c := m.deps.Client
	return m.mutateCmd("move task", "", func(ctx context.Context) error {
		_, err := mutate.MoveTask(ctx, c, board, task, column)
		return err
	}, nil)
}

func (m appModel) toggleSubtaskCmd(s model.Subtask) tea.Cmd {
	c := m.deps.Client
	return m.mutateCmd("toggle subtask", "", func(ctx context.Context) error {
		_, err := mutate.ToggleSubtask(ctx, c, s)
		return err
	}, nil)
}

func (m appModel) deleteTaskCmd(task model.Task) tea.Cmd {
	c, opts := m.deps.Client, m.deps.Options
	return m.mutateCmd("delete task", alertDeleteTask, func(ctx context.Context) error {
		return mutate.DeleteTask(ctx, c, task, opts)
	}, nil)
}

func (m appModel) saveThemeCmd(dark bool) tea.Cmd {
	ctx, prefs := m.ctx, m.deps.Prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{key: "darkMode", err: prefs.SetDarkMode(ctx, dark)}
	}
}

func copyCmd(label, text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			return flashMsg{text: "Copy failed: " + err.Error()}
		}
		return flashMsg{text: "Copied " + label + " " + text}
	}
}
