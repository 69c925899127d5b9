package cli

import (
	"context"
	"fmt"

	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the light/dark flag used by the TUI",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Prefs only need the config dir; no backend connection.
			prefs, err := store.OpenPrefs(ctx, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			defer prefs.Close()

			dark, err := setTheme(ctx, prefs, firstArg(args))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"darkMode": dark}})
		},
	}
}

func setTheme(ctx context.Context, prefs *store.Prefs, arg string) (bool, error) {
	dark, err := prefs.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	switch arg {
	case "":
		return dark, nil
	case "light":
		dark = false
	case "dark":
		dark = true
	case "toggle":
		dark = !dark
	default:
		return false, fmt.Errorf("unknown theme %q (want light|dark|toggle)", arg)
	}
	return dark, prefs.SetDarkMode(ctx, dark)
}
