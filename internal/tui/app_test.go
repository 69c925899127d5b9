package tui

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/api"
	"kanban-cli/internal/api/apitest"
	"kanban-cli/internal/forms"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/reconcile"
	"kanban-cli/internal/selection"
	"kanban-cli/internal/store"
)

func newTestDeps(t *testing.T) (*apitest.Server, Deps) {
	t.Helper()
	t.Setenv(store.EnvTUITheme, "")

	srv := apitest.New(t)
	c, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	prefs, err := store.OpenPrefs(context.Background(), filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err != nil {
		t.Fatalf("OpenPrefs: %v", err)
	}
	t.Cleanup(func() { _ = prefs.Close() })

	return srv, Deps{
		Client:    c,
		Selection: selection.NewManager(c, reconcile.New(c), nil),
		Prefs:     prefs,
		Options:   mutate.Options{Cascade: true},
	}
}

func seedBoard(srv *apitest.Server, name string, columns ...string) (string, []string) {
	id := srv.Seed("boards", map[string]any{"board_name": name})
	colIDs := make([]string, 0, len(columns))
	for _, c := range columns {
		colIDs = append(colIDs, srv.Seed("columns", map[string]any{"column_name": c, "board_id": id}))
	}
	return id, colIDs
}

func seedTask(srv *apitest.Server, columnID, status, name string, subtasks ...string) string {
	id := srv.Seed("tasks", map[string]any{"task_name": name, "description": "", "status": status, "column_id": columnID})
	for _, s := range subtasks {
		srv.Seed("subtasks", map[string]any{"subtask_name": s, "is_completed": false, "task_id": id})
	}
	return id
}

func startApp(t *testing.T, deps Deps) appModel {
	t.Helper()
	m := newAppModel(context.Background(), deps)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(appModel)
	return drain(t, m, m.Init())
}

// drain runs cmds synchronously, feeding every message back into Update until nothing is
// left to run.
func drain(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(appModel)
			queue = append(queue, more)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = drain(t, next.(appModel), cmd)
	}
	return m
}

func TestStartupSelectsFirstBoard(t *testing.T) {
	srv, deps := newTestDeps(t)
	id, _ := seedBoard(srv, "Platform Launch", "Todo", "Doing")
	seedBoard(srv, "Marketing Plan")

	m := startApp(t, deps)
	if !m.loaded || m.state.SelectedBoardID != id {
		t.Fatalf("expected first board selected, got %#v", m.state)
	}
	view := m.View()
	for _, want := range []string{"ALL BOARDS (2)", "Platform Launch", "TODO (0)", "DOING (0)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestAddTaskWithoutSubtasksStaysOpen(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch", "Todo", "Doing")
	m := startApp(t, deps)

	m = press(t, m, "n")
	if m.modal != modalTaskForm || m.form == nil {
		t.Fatalf("expected task form, got modal %v", m.modal)
	}
	m = press(t, m, "Write tests", "tab", "tab", "ctrl+d")
	if len(m.form.rows) != 0 {
		t.Fatalf("expected the subtask row removed, got %d rows", len(m.form.rows))
	}
	m = press(t, m, "ctrl+s")

	if m.modal != modalTaskForm || m.form == nil {
		t.Fatalf("expected form to stay open, got modal %v", m.modal)
	}
	if got := m.form.fieldError("subtask"); got != forms.MsgNeedsSubtask {
		t.Fatalf("expected %q, got %q", forms.MsgNeedsSubtask, got)
	}
	if !strings.Contains(m.View(), forms.MsgNeedsSubtask) {
		t.Fatalf("expected inline error in view")
	}
	if n := srv.CountRequests(http.MethodPost, "/tasks"); n != 0 {
		t.Fatalf("expected no POST /tasks, got %d", n)
	}
}

func TestAddTaskCreatesInCursorColumn(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch", "Todo", "Doing")
	m := startApp(t, deps)

	m = press(t, m, "tab", "right", "n")
	if got := m.form.status(); got != "Doing" {
		t.Fatalf("expected status preset to the cursor column, got %q", got)
	}
	m = press(t, m, "Write tests", "tab", "tab", "Draft plan", "ctrl+s")

	if m.modal != modalNone || m.form != nil {
		t.Fatalf("expected form closed after save, got modal %v", m.modal)
	}
	rows := srv.Rows("tasks")
	if len(rows) != 1 || rows[0]["task_name"] != "Write tests" || rows[0]["status"] != "Doing" {
		t.Fatalf("unexpected tasks: %#v", rows)
	}
	col := m.state.Selected.Columns[1]
	if len(col.Tasks) != 1 || col.Tasks[0].SubtaskProgress() != "0 of 1 subtasks" {
		t.Fatalf("expected new task in Doing, got %#v", col)
	}
}

func TestEditBoardDuplicateColumnShowsInlineError(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch", "Todo", "Doing")
	m := startApp(t, deps)

	m = press(t, m, "e")
	if m.modal != modalBoardForm || len(m.form.rows) != 2 {
		t.Fatalf("expected edit board form with 2 rows, got modal %v", m.modal)
	}
	m.form.rows[1].input.SetValue("Todo")
	m = press(t, m, "ctrl+s")

	if m.modal != modalBoardForm {
		t.Fatalf("expected form to stay open, got modal %v", m.modal)
	}
	if got := m.form.fieldError("board_column"); got != forms.MsgUniqueColumns {
		t.Fatalf("expected %q, got %q", forms.MsgUniqueColumns, got)
	}
	if n := srv.CountRequests(http.MethodPut, "/") + srv.CountRequests(http.MethodPost, "/"); n != 0 {
		t.Fatalf("expected no column writes, got %d", n)
	}
}

func TestAddBoardSelectsIt(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch", "Todo")
	m := startApp(t, deps)

	m = press(t, m, "B", "Roadmap", "tab", "Now", "ctrl+n", "Later", "ctrl+s")

	if m.modal != modalNone {
		t.Fatalf("expected form closed, got modal %v", m.modal)
	}
	b := m.selectedBoard()
	if b == nil || b.Name != "Roadmap" || strings.Join(b.ColumnNames(), ",") != "Now,Later" {
		t.Fatalf("expected new board selected, got %#v", b)
	}
	last, err := deps.Prefs.LastBoardID(context.Background())
	if err != nil || last != b.ID {
		t.Fatalf("expected last board %q saved, got %q (%v)", b.ID, last, err)
	}
	if len(srv.Rows("boards")) != 2 {
		t.Fatalf("expected 2 boards on the backend")
	}
}

func TestSelectBoardSavesLastBoard(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch")
	second, _ := seedBoard(srv, "Marketing Plan", "Ideas")
	m := startApp(t, deps)

	m = press(t, m, "down", "enter")

	if m.state.SelectedBoardID != second || m.pane != paneBoard {
		t.Fatalf("expected board %s selected with board pane focused, got %#v pane=%v", second, m.state.SelectedBoardID, m.pane)
	}
	last, err := deps.Prefs.LastBoardID(context.Background())
	if err != nil || last != second {
		t.Fatalf("expected last board %q, got %q (%v)", second, last, err)
	}
}

func TestDeleteBoardSelectsRemaining(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch", "Todo")
	second, _ := seedBoard(srv, "Marketing Plan")
	m := startApp(t, deps)

	m = press(t, m, "D")
	if m.modal != modalConfirmDeleteBoard || m.confirmFocus != confirmFocusCancel {
		t.Fatalf("expected delete confirm focused on cancel, got modal %v focus %v", m.modal, m.confirmFocus)
	}
	m = press(t, m, "tab", "enter")

	if m.modal != modalNone {
		t.Fatalf("expected no modal, got %v", m.modal)
	}
	if len(m.state.Boards) != 1 || m.state.SelectedBoardID != second {
		t.Fatalf("expected remaining board selected, got %#v", m.state)
	}
	last, _ := deps.Prefs.LastBoardID(context.Background())
	if last != second {
		t.Fatalf("expected last board %q, got %q", second, last)
	}
}

func TestDeleteBoardCancelSendsNothing(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch")
	m := startApp(t, deps)

	m = press(t, m, "D", "enter")
	if m.modal != modalNone {
		t.Fatalf("expected confirm dismissed, got %v", m.modal)
	}
	if n := srv.CountRequests(http.MethodDelete, "/"); n != 0 {
		t.Fatalf("expected no deletes, got %d", n)
	}
}

func TestDeleteBoardFailureShowsAlert(t *testing.T) {
	srv, deps := newTestDeps(t)
	id, _ := seedBoard(srv, "Platform Launch")
	m := startApp(t, deps)

	srv.FailNext(http.MethodDelete, "/boards", http.StatusInternalServerError)
	m = press(t, m, "D", "tab", "enter")

	if m.modal != modalAlert || m.alertBody != alertDeleteBoard {
		t.Fatalf("expected delete alert, got modal %v body %q", m.modal, m.alertBody)
	}
	if m.state.SelectedBoardID != id || len(m.state.Boards) != 1 {
		t.Fatalf("expected board to remain selected, got %#v", m.state)
	}
	if !strings.Contains(m.View(), alertDeleteBoard) {
		t.Fatalf("expected alert text in view:\n%s", m.View())
	}

	m = press(t, m, "enter")
	if m.modal != modalNone {
		t.Fatalf("expected alert dismissed, got %v", m.modal)
	}
}

func TestTaskDetailToggleAndMove(t *testing.T) {
	srv, deps := newTestDeps(t)
	_, cols := seedBoard(srv, "Platform Launch", "Todo", "Doing")
	taskID := seedTask(srv, cols[0], "Todo", "Build UI", "Sketch", "Review")
	m := startApp(t, deps)

	m = press(t, m, "tab", "enter")
	if m.modal != modalTaskDetail || m.detailTaskID != taskID {
		t.Fatalf("expected task detail for %s, got modal %v task %q", taskID, m.modal, m.detailTaskID)
	}

	m = press(t, m, "space")
	task, ok := m.detailTask()
	if !ok || task.SubtaskProgress() != "1 of 2 subtasks" {
		t.Fatalf("expected first subtask completed, got %#v", task)
	}

	m = press(t, m, "s")
	if m.modal != modalStatusPicker || m.statusIdx != 0 {
		t.Fatalf("expected status picker at Todo, got modal %v idx %d", m.modal, m.statusIdx)
	}
	m = press(t, m, "down", "enter")

	if m.modal != modalTaskDetail {
		t.Fatalf("expected back on the detail modal, got %v", m.modal)
	}
	task, ok = m.detailTask()
	if !ok || task.Status != "Doing" || task.ColumnID != cols[1] {
		t.Fatalf("expected task moved to Doing, got %#v", task)
	}
	if m.sel.TaskID != taskID || m.sel.Col != 1 {
		t.Fatalf("expected cursor to follow the moved task, got %#v", m.sel)
	}
}

func TestDeleteTaskFromDetail(t *testing.T) {
	srv, deps := newTestDeps(t)
	_, cols := seedBoard(srv, "Platform Launch", "Todo")
	seedTask(srv, cols[0], "Todo", "Build UI", "Sketch")
	m := startApp(t, deps)

	m = press(t, m, "tab", "enter", "d", "tab", "enter")

	if m.modal != modalNone {
		t.Fatalf("expected modal closed, got %v", m.modal)
	}
	if len(srv.Rows("tasks")) != 0 || len(m.state.Selected.Columns[0].Tasks) != 0 {
		t.Fatalf("expected task deleted")
	}
}

func TestDeleteTaskFailureShowsAlert(t *testing.T) {
	srv, deps := newTestDeps(t)
	_, cols := seedBoard(srv, "Platform Launch", "Todo")
	taskID := seedTask(srv, cols[0], "Todo", "Build UI")
	m := startApp(t, deps)

	srv.FailNext(http.MethodDelete, "/tasks/", http.StatusInternalServerError)
	m = press(t, m, "tab", "enter", "d", "tab", "enter")

	if m.modal != modalAlert || m.alertBody != alertDeleteTask {
		t.Fatalf("expected task delete alert, got modal %v body %q", m.modal, m.alertBody)
	}
	if len(srv.Rows("tasks")) != 1 {
		t.Fatalf("expected task to remain on the backend")
	}
	if _, _, ok := m.state.Selected.FindTask(taskID); !ok {
		t.Fatalf("expected task still shown")
	}
	if !strings.Contains(m.View(), alertDeleteTask) {
		t.Fatalf("expected alert text in view:\n%s", m.View())
	}
}

func TestThemeTogglePersists(t *testing.T) {
	_, deps := newTestDeps(t)
	m := startApp(t, deps)
	if m.dark {
		t.Fatalf("expected light mode by default")
	}

	m = press(t, m, "t")
	if !m.dark {
		t.Fatalf("expected dark mode after toggle")
	}
	dark, err := deps.Prefs.DarkMode(context.Background())
	if err != nil || !dark {
		t.Fatalf("expected dark mode saved, got %v (%v)", dark, err)
	}

	again := newAppModel(context.Background(), deps)
	if !again.dark {
		t.Fatalf("expected saved theme restored on start")
	}
}

func TestOlderSnapshotIgnored(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Platform Launch")
	m := startApp(t, deps)
	current := m.state

	stale := current
	stale.Generation = 0
	stale.Boards = nil
	next, _ := m.Update(stateMsg{op: "load", state: stale})
	m = next.(appModel)

	if m.state.Generation != current.Generation || len(m.state.Boards) != 1 {
		t.Fatalf("expected stale snapshot ignored, got %#v", m.state)
	}
}

func TestNewTaskNeedsColumn(t *testing.T) {
	srv, deps := newTestDeps(t)
	seedBoard(srv, "Empty")
	m := startApp(t, deps)

	m = press(t, m, "n")
	if m.modal != modalNone || !strings.Contains(m.minibufferText, "Add a column") {
		t.Fatalf("expected a hint instead of a form, got modal %v text %q", m.modal, m.minibufferText)
	}
}

func TestCopyTaskID(t *testing.T) {
	srv, deps := newTestDeps(t)
	_, cols := seedBoard(srv, "Platform Launch", "Todo")
	taskID := seedTask(srv, cols[0], "Todo", "Build UI", "Sketch")

	var copied string
	prev := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = prev })

	m := startApp(t, deps)
	m = press(t, m, "tab", "enter", "y")
	if copied != taskID {
		t.Fatalf("expected %q copied, got %q", taskID, copied)
	}
	if !strings.Contains(m.minibufferText, "Copied task id") {
		t.Fatalf("expected copy confirmation, got %q", m.minibufferText)
	}
}

func TestHelpModalListsOtherTopics(t *testing.T) {
	_, deps := newTestDeps(t)
	m := startApp(t, deps)

	m = press(t, m, "?")
	if m.modal != modalHelp {
		t.Fatalf("expected help modal, got %v", m.modal)
	}
	view := m.View()
	for _, want := range []string{"Keys", "kanban docs cli", "kanban docs config"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help:\n%s", want, view)
		}
	}
	m = press(t, m, "esc")
	if m.modal != modalNone {
		t.Fatalf("expected help closed, got %v", m.modal)
	}
}
