package cli

import (
	"strings"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	var board string
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			_, t, err := s.findTask(cmd.Context(), board, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": *t})
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name (default: search the last selected board, then all)")
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var (
		board       string
		title       string
		description string
		status      string
		subtasks    []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in the column named by --status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			b, err := s.loadBoard(ctx, board)
			if err != nil {
				return writeErr(cmd, err)
			}
			form := forms.TaskForm{Name: title, Description: description, Status: status, Subtasks: []forms.SubtaskField{}}
			for _, st := range subtasks {
				form.Subtasks = append(form.Subtasks, forms.NewSubtaskField(st))
			}
			created, err := mutate.CreateTask(ctx, s.client, *b, form)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := s.refreshBoard(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if t, _, ok := out.FindTask(created.ID); ok {
				return writeOut(cmd, app, map[string]any{"data": *t})
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name (default: last selected)")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&status, "status", "", "Column name")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Subtask title (repeatable, at least one)")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var (
		board       string
		title       string
		description string
		status      string
		subtasks    []string
	)
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task",
		Long: strings.TrimSpace(`
Only the given flags change. With --subtask the given list replaces the task's subtasks:
"<subtask-id>=Title" keeps an existing subtask (and its completion), a plain title creates
a new one, and subtasks not listed are deleted.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			b, t, err := s.findTask(ctx, board, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			form := forms.TaskFormFrom(*t)
			if cmd.Flags().Changed("title") {
				form.Name = title
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}
			if cmd.Flags().Changed("status") {
				form.Status = status
			}
			if cmd.Flags().Changed("subtask") {
				form.Subtasks = subtaskFields(*t, subtasks)
			}
			if err := mutate.EditTask(ctx, s.client, *b, *t, form, s.opts); err != nil {
				return writeErr(cmd, err)
			}
			return writeRefreshedTask(cmd, app, s, t.ID)
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New column name")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Subtask (repeatable): Title or <subtask-id>=Title")
	return cmd
}

func subtaskFields(t model.Task, values []string) []forms.SubtaskField {
	byID := make(map[string]model.Subtask, len(t.Subtasks))
	for _, st := range t.Subtasks {
		byID[st.ID] = st
	}
	out := make([]forms.SubtaskField, 0, len(values))
	for _, v := range values {
		if id, rest, ok := strings.Cut(v, "="); ok {
			if st, known := byID[strings.TrimSpace(id)]; known {
				out = append(out, forms.SubtaskField{Key: st.ID, ID: st.ID, Name: rest, IsCompleted: st.IsCompleted})
				continue
			}
		}
		out = append(out, forms.NewSubtaskField(v))
	}
	return out
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var board, status string
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to the column named by --status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			b, t, err := s.findTask(ctx, board, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := mutate.MoveTask(ctx, s.client, *b, *t, status); err != nil {
				return writeErr(cmd, err)
			}
			return writeRefreshedTask(cmd, app, s, t.ID)
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name")
	cmd.Flags().StringVar(&status, "status", "", "Target column name")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var board string
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			_, t, err := s.findTask(ctx, board, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteTask(ctx, s.client, *t, s.opts); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.sel.Refresh(ctx)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": t.ID}})
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name")
	return cmd
}

func writeRefreshedTask(cmd *cobra.Command, app *App, s *session, taskID string) error {
	b, err := s.refreshBoard(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	t, _, ok := b.FindTask(taskID)
	if !ok {
		return writeErr(cmd, errNotFound("task", taskID))
	}
	return writeOut(cmd, app, map[string]any{"data": *t})
}
