package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
	"kanban-cli/internal/statusutil"
)

// columnsSelection addresses a task card by column and position. TaskID keeps the cursor on
// the same task when a reload reorders or moves it.
type columnsSelection struct {
	Col    int
	Item   int
	TaskID string
}

const (
	columnGap  = 2
	columnMinW = 24
	columnMaxW = 36
)

func clampSelection(b *model.Board, sel columnsSelection) columnsSelection {
	if b == nil || len(b.Columns) == 0 {
		return columnsSelection{}
	}
	if sel.TaskID != "" {
		for ci, c := range b.Columns {
			for ti, t := range c.Tasks {
				if t.ID == sel.TaskID {
					return columnsSelection{Col: ci, Item: ti, TaskID: t.ID}
				}
			}
		}
	}

	sel.Col = clamp(sel.Col, 0, len(b.Columns)-1)
	tasks := b.Columns[sel.Col].Tasks
	if len(tasks) == 0 {
		return columnsSelection{Col: sel.Col}
	}
	sel.Item = clamp(sel.Item, 0, len(tasks)-1)
	sel.TaskID = tasks[sel.Item].ID
	return sel
}

// moveSelection steps the cursor by whole columns or cards. Moving across columns keeps
// the row when the target column has one.
func moveSelection(b *model.Board, sel columnsSelection, dCol, dItem int) columnsSelection {
	sel.Col += dCol
	sel.Item += dItem
	sel.TaskID = ""
	return clampSelection(b, sel)
}

func selectedTask(b *model.Board, sel columnsSelection) (*model.Task, bool) {
	if b == nil || sel.TaskID == "" {
		return nil, false
	}
	t, _, ok := b.FindTask(sel.TaskID)
	return t, ok
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// visibleColumns returns the column width and the [start, end) window of columns that fit
// in width while keeping the selected column on screen.
func visibleColumns(n, selCol, width int) (colW, start, end int) {
	if n <= 0 {
		return 0, 0, 0
	}
	colW = (width - columnGap*(n-1)) / n
	if colW > columnMaxW {
		colW = columnMaxW
	}
	if colW < columnMinW {
		colW = columnMinW
	}
	fit := (width + columnGap) / (colW + columnGap)
	if fit < 1 {
		fit = 1
	}
	if fit >= n {
		return colW, 0, n
	}
	start = selCol - fit + 1
	if start < 0 {
		start = 0
	}
	return colW, start, start + fit
}

func renderColumns(b *model.Board, sel columnsSelection, width, height int, focused bool) string {
	if width < 0 {
		width = 0
	}
	if b == nil {
		return normalizePane("", width, height)
	}
	if len(b.Columns) == 0 {
		return renderEmptyBoard(width, height)
	}
	sel = clampSelection(b, sel)
	colW, start, end := visibleColumns(len(b.Columns), sel.Col, width)

	cardStyle := lipgloss.NewStyle().
		Width(colW).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder)
	cardSelected := cardStyle.
		BorderForeground(colorAccent).
		Background(colorSelectedBg).
		Foreground(colorSelectedFg)
	// Width above covers padding; borders add two more columns.
	textW := colW - 2
	cardOuterW := colW + 2

	renderCard := func(colName string, t model.Task, selected bool) string {
		title := strings.TrimSpace(t.Name)
		if title == "" {
			title = "(untitled)"
		}
		titleStyle := lipgloss.NewStyle().Bold(true)
		if statusutil.IsEndState(colName) && !selected {
			titleStyle = faintIfDark(titleStyle.Foreground(colorMuted)).Strikethrough(true)
		}
		lines := make([]string, 0, 3)
		for _, ln := range wrapText(title, textW) {
			lines = append(lines, titleStyle.Render(ln))
		}
		lines = append(lines, styleMuted().Render(truncateText(t.SubtaskProgress(), textW)))

		st := cardStyle
		if selected {
			st = cardSelected
		}
		return st.Render(strings.Join(lines, "\n"))
	}

	renderCol := func(ci int, c model.Column) string {
		dot := lipgloss.NewStyle().Foreground(columnDotColors[ci%len(columnDotColors)]).Render("●")
		head := fmt.Sprintf("%s (%d)", strings.ToUpper(strings.TrimSpace(c.Name)), len(c.Tasks))
		headStyle := styleMuted().Bold(true)
		if focused && ci == sel.Col {
			headStyle = styleAccent()
		}
		lines := []string{dot + " " + headStyle.Render(truncateText(head, cardOuterW-2)), ""}

		if len(c.Tasks) == 0 {
			lines = append(lines, styleMuted().Render("(no tasks)"))
			return normalizePane(strings.Join(lines, "\n"), cardOuterW, height)
		}
		for ti, t := range c.Tasks {
			selected := focused && ci == sel.Col && ti == sel.Item
			lines = append(lines, strings.Split(renderCard(c.Name, t, selected), "\n")...)
		}
		return normalizePane(strings.Join(lines, "\n"), cardOuterW, height)
	}

	rendered := make([]string, 0, end-start)
	for ci := start; ci < end; ci++ {
		if len(rendered) > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, renderCol(ci, b.Columns[ci]))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return normalizePane(out, width, height)
}

func renderEmptyBoard(width, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styleMuted().Bold(true).Render("This board is empty. Create a new column to get started."),
		"",
		styleAccent().Render("+ Add New Column (e)"),
	)
	if height <= 0 {
		return normalizePane(msg, width, 0)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
