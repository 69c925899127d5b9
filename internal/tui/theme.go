package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"kanban-cli/internal/store"
)

// Palette. Every color is adaptive so the same styles work in light and dark mode; the
// mode itself is chosen by applyTheme rather than detected from the terminal.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceBg  = ac("255", "235")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "236")
	colorInputBg    = ac("254", "234")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorCardBorder = ac("250", "243")

	colorAccent   = ac("#635FC7", "#A8A4FF")
	colorAccentFg = ac("255", "235")
	colorDanger   = ac("#EA5555", "#FF9898")

	colorModalHeaderBg = colorControlBg
	colorModalHeaderFg = colorSurfaceFg

	// Column header dots cycle through these.
	columnDotColors = []lipgloss.AdaptiveColor{
		ac("#49C4E5", "#49C4E5"),
		ac("#8471F2", "#8471F2"),
		ac("#67E2AE", "#67E2AE"),
		ac("#E5A449", "#E5A449"),
	}
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDanger)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can switch colors off inside a TUI;
// only NO_COLOR is respected here, otherwise the terminal's capabilities win.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Some terminals under-report what they support; trust COLORTERM/TERM when they
	// claim more.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// themeOverride reads KANBAN_TUI_THEME=light|dark|auto. ok is false for auto, unset or
// unknown values, in which case the saved preference is used.
func themeOverride() (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(store.EnvTUITheme))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	default:
		return false, false
	}
}

// applyTheme pins Lip Gloss's background detection to the chosen mode so adaptive colors
// follow the toggle instead of the terminal.
func applyTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}
