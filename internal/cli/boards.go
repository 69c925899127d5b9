package cli

import (
	"fmt"
	"strings"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsSelectCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsEditCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	cmd.AddCommand(newBoardsExportCmd(app))
	return cmd
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			boards, err := s.client.ListBoards(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": model.BoardList(boards)})
		},
	}
}

func newBoardsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [board]",
		Short: "Show a board with its columns, tasks and subtasks (default: last selected)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := s.loadBoard(cmd.Context(), firstArg(args))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": *b})
		},
	}
}

func newBoardsSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <board>",
		Short: "Remember a board as the default for later commands (and the TUI)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := s.loadBoard(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.prefs.SetLastBoardID(cmd.Context(), b.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": *b})
		},
	}
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var name string
	var columns []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board (columns are created in the given order)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			form := forms.BoardForm{Name: name, Columns: []forms.ColumnField{}}
			for _, c := range columns {
				form.Columns = append(form.Columns, forms.NewColumnField(c))
			}
			created, err := mutate.CreateBoard(cmd.Context(), s.client, form)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.prefs.SetLastBoardID(cmd.Context(), created.ID); err != nil {
				return writeErr(cmd, err)
			}
			b, err := s.loadBoard(cmd.Context(), created.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": *b})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column name (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsEditCmd(app *App) *cobra.Command {
	var name string
	var columns []string

	cmd := &cobra.Command{
		Use:   "edit <board>",
		Short: "Rename a board and/or replace its column list",
		Long: strings.TrimSpace(`
Without --column the columns are left as they are. With --column the given list replaces
the board's columns: "<column-id>=Name" keeps (and possibly renames) an existing column,
a plain name creates a new one, and columns not listed are deleted with their tasks.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := s.loadBoard(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			form := forms.BoardFormFrom(*b)
			if cmd.Flags().Changed("name") {
				form.Name = name
			}
			if cmd.Flags().Changed("column") {
				form.Columns = columnFields(*b, columns)
			}
			if err := mutate.EditBoard(cmd.Context(), s.client, *b, form, s.opts); err != nil {
				return writeErr(cmd, err)
			}
			out, err := s.refreshBoard(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": *out})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column (repeatable): Name or <column-id>=Name")
	return cmd
}

// columnFields parses --column values. "id=Name" only binds to id when it is a column of b;
// otherwise the whole value is a new column's name.
func columnFields(b model.Board, values []string) []forms.ColumnField {
	out := make([]forms.ColumnField, 0, len(values))
	for _, v := range values {
		if id, rest, ok := strings.Cut(v, "="); ok {
			if _, known := b.FindColumn(id); known {
				out = append(out, forms.ColumnField{Key: id, ID: strings.TrimSpace(id), Name: rest})
				continue
			}
		}
		out = append(out, forms.NewColumnField(v))
	}
	return out
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board (and, unless cascadeDeletes is false, its columns, tasks and subtasks)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ctx := cmd.Context()
			b, err := s.loadBoard(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteBoard(ctx, s.client, *b, s.opts); err != nil {
				return writeErr(cmd, err)
			}
			// The backend delete succeeded; a failed re-list only affects what is selected next.
			_ = s.sel.RemoveBoard(ctx, b.ID)
			next := s.sel.State().SelectedBoardID
			last, _ := s.prefs.LastBoardID(ctx)
			if last == b.ID || last == "" {
				_ = s.prefs.SetLastBoardID(ctx, next)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted":         b.ID,
				"selectedBoardId": next,
			}})
		},
	}
}

func newBoardsExportCmd(app *App) *cobra.Command {
	var out string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export [board]",
		Short: "Export a board as markdown (to stdout, or to a file with --out)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := s.loadBoard(cmd.Context(), firstArg(args))
			if err != nil {
				return writeErr(cmd, err)
			}
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderBoardMarkdown(*b))
				return err
			}
			if out == "." {
				out = publish.Slug(b.Name) + ".md"
			}
			res, err := publish.WriteBoard(*b, out, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout (\".\" names it after the board)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
