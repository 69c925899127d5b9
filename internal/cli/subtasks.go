package cli

import (
	"kanban-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newSubtasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Subtask commands",
	}
	cmd.AddCommand(newSubtasksToggleCmd(app))
	return cmd
}

func newSubtasksToggleCmd(app *App) *cobra.Command {
	var board string
	cmd := &cobra.Command{
		Use:   "toggle <subtask-id>",
		Short: "Flip a subtask between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			_, sub, err := s.findSubtask(ctx, board, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := mutate.ToggleSubtask(ctx, s.client, *sub)
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = s.sel.Refresh(ctx)
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "Board id or name")
	return cmd
}
