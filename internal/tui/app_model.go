package tui

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/docs"
	"kanban-cli/internal/model"
	"kanban-cli/internal/selection"
)

type appModel struct {
	ctx    context.Context
	deps   Deps
	logger *log.Logger

	width  int
	height int
	dark   bool

	pane   pane
	boards list.Model
	// state is the last applied selection snapshot; older generations are ignored.
	state  selection.State
	loaded bool
	sel    columnsSelection

	modal        modalKind
	form         *formState
	detailTaskID string
	detailIdx    int
	statusIdx    int
	confirmFocus confirmModalFocus
	alertBody    string
	// pending names the write in flight, for the footer.
	pending string

	minibufferText string
}

func newAppModel(ctx context.Context, deps Deps) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := appModel{
		ctx:    ctx,
		deps:   deps,
		logger: logger,
		pane:   paneSidebar,
		boards: newBoardList(),
		state:  deps.Selection.State(),
	}

	if deps.Prefs != nil {
		dark, err := deps.Prefs.DarkMode(ctx)
		if err != nil {
			logger.Printf("tui: read dark mode: %v", err)
		}
		m.dark = dark
	}
	if dark, ok := themeOverride(); ok {
		m.dark = dark
	}
	applyTheme(m.dark)
	return m
}

func (m appModel) Init() tea.Cmd {
	last := ""
	if m.deps.Prefs != nil {
		id, err := m.deps.Prefs.LastBoardID(m.ctx)
		if err != nil {
			m.logger.Printf("tui: read last board: %v", err)
		}
		last = id
	}
	return m.loadCmd(last)
}

func (m appModel) selectedBoard() *model.Board {
	return m.state.Selected
}

func (m appModel) detailTask() (*model.Task, bool) {
	b := m.selectedBoard()
	if b == nil || m.detailTaskID == "" {
		return nil, false
	}
	t, _, ok := b.FindTask(m.detailTaskID)
	return t, ok
}

func (m *appModel) resize() {
	h := m.bodyHeight() - 5
	if h < 3 {
		h = 3
	}
	m.boards.SetSize(sidebarW-2, h)
	if m.form != nil {
		m.form.resize(m.width)
	}
}

func (m appModel) bodyHeight() int {
	// Header and footer take one line each plus a blank separator.
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.modal != modalNone {
		if box := m.modalView(); box != "" {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
	}

	header := m.headerView()
	bodyH := m.bodyHeight()
	side := renderSidebar(m.boards, len(m.state.Boards), bodyH, m.pane == paneSidebar)
	boardW := m.width - lipgloss.Width(side) - 2
	var board string
	switch {
	case !m.loaded:
		board = normalizePane(styleMuted().Render("Loading…"), boardW, bodyH)
	case len(m.state.Boards) == 0:
		board = lipgloss.Place(boardW, bodyH, lipgloss.Center, lipgloss.Center,
			styleMuted().Render("No boards yet. Press B to create one."))
	default:
		board = renderColumns(m.selectedBoard(), m.sel, boardW, bodyH, m.pane == paneBoard)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", board)

	return strings.Join([]string{header, "", body, "", m.footerView()}, "\n")
}

func (m appModel) headerView() string {
	title := styleAccent().Render("kanban")
	name := ""
	if b := m.selectedBoard(); b != nil {
		name = lipgloss.NewStyle().Bold(true).Render(b.Name)
	}
	right := styleAccent().Render("+ Add New Task (n)")
	left := title + "  " + name
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return normalizePane(left, m.width, 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) footerView() string {
	text := "tab: focus   enter: open   n: new task   B: new board   e: edit board   D: delete board   t: theme   r: reload   ?: help   q: quit"
	switch {
	case m.pending != "":
		text = m.pending + "…"
	case m.minibufferText != "":
		text = m.minibufferText
	}
	return styleMuted().Render(truncateText(text, m.width))
}

func (m appModel) modalView() string {
	switch m.modal {
	case modalBoardForm, modalTaskForm:
		if m.form != nil {
			return m.form.view(m.width)
		}
	case modalTaskDetail:
		if t, ok := m.detailTask(); ok {
			return renderTaskDetail(m.width, *t, m.detailIdx, m.dark)
		}
	case modalStatusPicker:
		if t, ok := m.detailTask(); ok {
			return renderStatusPicker(m.width, *t, statusNames(m.selectedBoard()), m.statusIdx)
		}
	case modalConfirmDeleteBoard:
		if b := m.selectedBoard(); b != nil {
			body := "Are you sure you want to delete the '" + b.Name + "' board? This action will remove all columns and tasks and cannot be reversed."
			return renderConfirmModal(m.width, "Delete this board?", body, "Delete", "Cancel", m.confirmFocus)
		}
	case modalConfirmDeleteTask:
		if t, ok := m.detailTask(); ok {
			body := "Are you sure you want to delete the '" + t.Name + "' task and its subtasks? This action cannot be reversed."
			return renderConfirmModal(m.width, "Delete this task?", body, "Delete", "Cancel", m.confirmFocus)
		}
	case modalAlert:
		return renderAlertModal(m.width, "Something went wrong", m.alertBody)
	case modalHelp:
		return m.helpView()
	}
	return ""
}

// helpView renders the tui topic and points at the other topics by their summaries.
func (m appModel) helpView() string {
	bodyW := modalBodyWidth(m.width)
	title := "Help"
	if t, ok := docs.Find("tui"); ok {
		title = t.Title
	}
	md, _ := docs.Get("tui")
	lines := []string{renderMarkdown(md, bodyW, m.dark), ""}
	for _, t := range docs.List() {
		if t.Name == "tui" {
			continue
		}
		lines = append(lines, styleMuted().Render(truncateText("kanban docs "+t.Name+": "+t.Summary, bodyW)))
	}
	lines = append(lines, "", styleMuted().Render("esc: close"))
	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
