package cli

import (
	"fmt"

	"kanban-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "List help topics, or print one (by name or title)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.List()}})
			}

			t, ok := docs.Find(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic %q (known: %v)", args[0], docs.Topics()))
			}
			body, _ := docs.Get(t.Name)
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": t, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown only")
	return cmd
}
