package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxW = 72
	modalMinW = 30
	// Border and horizontal padding on each side.
	modalChromeW = 2 + 4
)

func modalBoxWidth(termW int) int {
	w := termW - 8
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

// modalBodyWidth is the usable text width inside renderModalBox.
func modalBodyWidth(termW int) int {
	return modalBoxWidth(termW) - modalChromeW
}

// renderModalBox draws a titled box sized for a terminal termW columns wide. Body lines are
// padded to the body width so the surface background is solid.
func renderModalBox(termW int, title string, body string) string {
	w := modalBoxWidth(termW)
	inner := w - 2
	bodyW := modalBodyWidth(termW)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Padding(0, 2).
		Width(inner).
		Render(truncateText(title, inner-4))

	content := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Padding(1, 2).
		Width(inner).
		Render(normalizePane(body, bodyW, 0))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested borders inside a modal with a background color
	// leave artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnDanger := btnBase.
		Foreground(colorAccentFg).
		Background(colorDanger).
		Bold(true)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnDanger.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)

	bodyW := modalBodyWidth(width)
	content := strings.Join([]string{
		strings.Join(wrapText(body, bodyW), "\n"),
		"",
		controls,
		"",
		styleMuted().Render("tab: focus   enter: select   esc: cancel"),
	}, "\n")
	return renderModalBox(width, styleError().Bold(true).Render(title), content)
}

// renderAlertModal is the blocking notice shown when a destructive action failed.
func renderAlertModal(width int, title string, body string) string {
	bodyW := modalBodyWidth(width)
	content := strings.Join([]string{
		strings.Join(wrapText(body, bodyW), "\n"),
		"",
		styleMuted().Render("enter/esc: dismiss"),
	}, "\n")
	return renderModalBox(width, title, content)
}
