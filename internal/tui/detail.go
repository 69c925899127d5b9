package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
)

func renderTaskDetail(termW int, t model.Task, subIdx int, dark bool) string {
	bodyW := modalBodyWidth(termW)
	lines := make([]string, 0, 16)

	if desc := renderMarkdown(t.Description, bodyW, dark); desc != "" {
		lines = append(lines, desc, "")
	} else {
		lines = append(lines, styleMuted().Render("No description."), "")
	}

	lines = append(lines, styleMuted().Bold(true).Render(
		fmt.Sprintf("Subtasks (%d of %d)", t.CompletedCount(), len(t.Subtasks))))
	if len(t.Subtasks) == 0 {
		lines = append(lines, styleMuted().Render("(none)"))
	}
	row := lipgloss.NewStyle().Width(bodyW).Background(colorControlBg)
	rowSelected := row.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	for i, s := range t.Subtasks {
		box := "[ ] "
		text := truncateText(s.Name, bodyW-4)
		if s.IsCompleted {
			box = "[x] "
			text = faintIfDark(lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)).Render(text)
		}
		st := row
		if i == subIdx {
			st = rowSelected
		}
		lines = append(lines, st.Render(box+text))
	}

	lines = append(lines, "",
		styleMuted().Bold(true).Render("Current Status"),
		styleAccent().Render(t.Status),
		"",
		styleMuted().Render(strings.Join(wrapText("j/k: subtask   space: toggle   s: status   e: edit   d: delete   y: copy id   esc: close", bodyW), "\n")),
	)
	return renderModalBox(termW, t.Name, strings.Join(lines, "\n"))
}

func renderStatusPicker(termW int, t model.Task, statuses []string, idx int) string {
	bodyW := modalBodyWidth(termW)
	row := lipgloss.NewStyle().Width(bodyW).Padding(0, 1)
	rowSelected := row.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)

	lines := make([]string, 0, len(statuses)+3)
	for i, s := range statuses {
		label := s
		if s == t.Status {
			label += "  (current)"
		}
		st := row
		if i == idx {
			st = rowSelected
		}
		lines = append(lines, st.Render(truncateText(label, bodyW-2)))
	}
	lines = append(lines, "", styleMuted().Render("j/k: move   enter: set status   esc: back"))
	return renderModalBox(termW, "Move “"+t.Name+"”", strings.Join(lines, "\n"))
}
