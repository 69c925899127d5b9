package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
)

const sidebarW = 28

type boardItem struct {
	board   model.Board
	current bool
}

func (i boardItem) FilterValue() string { return i.board.Name }

func (i boardItem) Title() string {
	if i.current {
		return "▸ " + i.board.Name
	}
	return "  " + i.board.Name
}

func (i boardItem) Description() string { return "" }

func newBoardList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)

	l := list.New([]list.Item{}, d, 0, 0)
	l.Title = "Boards"
	// The sidebar draws its own header and help.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("board", "boards")
	// q and esc are handled by the app (quit / back); the list must not quit on its own.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// setBoardItems replaces the sidebar rows, keeping the cursor on the same board id when it
// still exists, else on the selected board.
func setBoardItems(l *list.Model, boards []model.Board, selectedID string) tea.Cmd {
	cursorID := ""
	if it, ok := l.SelectedItem().(boardItem); ok {
		cursorID = it.board.ID
	}
	items := make([]list.Item, 0, len(boards))
	found := false
	for _, b := range boards {
		items = append(items, boardItem{board: b, current: b.ID == selectedID})
		if b.ID == cursorID {
			found = true
		}
	}
	cmd := l.SetItems(items)
	if !found {
		cursorID = selectedID
	}
	selectListItemByID(l, cursorID)
	return cmd
}

func selectListItemByID(l *list.Model, id string) {
	for i, it := range l.Items() {
		if bi, ok := it.(boardItem); ok && bi.board.ID == id {
			l.Select(i)
			return
		}
	}
}

func cursorBoardID(l list.Model) (string, bool) {
	it, ok := l.SelectedItem().(boardItem)
	if !ok {
		return "", false
	}
	return it.board.ID, true
}

func renderSidebar(l list.Model, boards int, height int, focused bool) string {
	head := styleMuted().Bold(true).Render(fmt.Sprintf("ALL BOARDS (%d)", boards))
	if focused {
		head = styleAccent().Render(fmt.Sprintf("ALL BOARDS (%d)", boards))
	}
	lines := []string{head, ""}
	if boards == 0 {
		lines = append(lines, styleMuted().Render("No boards yet."))
	} else {
		lines = append(lines, l.View())
	}
	lines = append(lines, "", styleAccent().Render("+ Create New Board (B)"))

	body := normalizePane(strings.Join(lines, "\n"), sidebarW-2, height)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(colorCardBorder).
		PaddingRight(1).
		Render(body)
}
