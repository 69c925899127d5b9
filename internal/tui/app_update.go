package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/selection"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case stateMsg:
		cmd := m.applyState(msg.state)
		if msg.err != nil && !errors.Is(msg.err, selection.ErrSuperseded) {
			m.logger.Printf("tui: %s: %v", msg.op, msg.err)
			m.minibufferText = "Could not " + msg.op + ": " + msg.err.Error()
		}
		return m, cmd

	case mutationMsg:
		return m.applyMutation(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Printf("tui: save %s: %v", msg.key, msg.err)
			m.minibufferText = "Could not save " + msg.key + ": " + msg.err.Error()
		}
		return m, nil

	case flashMsg:
		m.minibufferText = msg.text
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Filter results and other list internals.
	var cmd tea.Cmd
	m.boards, cmd = m.boards.Update(msg)
	return m, cmd
}

// applyState swaps in a selection snapshot unless a newer one is already shown.
func (m *appModel) applyState(st selection.State) tea.Cmd {
	if st.Generation < m.state.Generation {
		return nil
	}
	m.state = st
	m.loaded = true
	m.sel = clampSelection(st.Selected, m.sel)
	cmd := setBoardItems(&m.boards, st.Boards, st.SelectedBoardID)

	switch m.modal {
	case modalTaskDetail, modalStatusPicker, modalConfirmDeleteTask:
		t, ok := m.detailTask()
		if !ok {
			m.modal = modalNone
			m.detailTaskID = ""
			break
		}
		m.detailIdx = clamp(m.detailIdx, 0, max(len(t.Subtasks)-1, 0))
	case modalConfirmDeleteBoard:
		if st.Selected == nil {
			m.modal = modalNone
		}
	}
	return cmd
}

func (m appModel) applyMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	cmd := m.applyState(msg.state)
	m.pending = ""

	if msg.err != nil {
		if msg.alert != "" {
			m.form = nil
			m.modal = modalAlert
			m.alertBody = msg.alert
			return m, cmd
		}
		if m.form != nil && m.form.saving {
			m.form.saving = false
			if ve, ok := forms.AsValidationError(msg.err); ok {
				m.form.errs = ve
			} else {
				m.form.submitErr = "Could not save: " + msg.err.Error()
			}
			return m, cmd
		}
		m.minibufferText = "Could not " + msg.op + ": " + msg.err.Error()
		return m, cmd
	}

	if m.form != nil && m.form.saving {
		m.form = nil
		m.modal = modalNone
		m.detailTaskID = ""
	}
	m.minibufferText = ""
	return m, cmd
}

func (m appModel) updateKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalBoardForm, modalTaskForm:
		return m.updateFormKey(k)
	case modalTaskDetail:
		return m.updateDetailKey(k)
	case modalStatusPicker:
		return m.updateStatusPickerKey(k)
	case modalConfirmDeleteBoard, modalConfirmDeleteTask:
		return m.updateConfirmKey(k)
	case modalAlert:
		switch k.String() {
		case "enter", "esc", "q", " ":
			m.modal = modalNone
			m.alertBody = ""
		}
		return m, nil
	case modalHelp:
		switch k.String() {
		case "enter", "esc", "q", "?":
			m.modal = modalNone
		}
		return m, nil
	}

	m.minibufferText = ""
	// While typing a sidebar filter every key belongs to the list.
	if m.pane == paneSidebar && m.boards.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.boards, cmd = m.boards.Update(k)
		return m, cmd
	}

	switch k.String() {
	case "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.pane == paneSidebar {
			m.pane = paneBoard
		} else {
			m.pane = paneSidebar
		}
		return m, nil
	case "t":
		m.dark = !m.dark
		applyTheme(m.dark)
		return m, m.saveThemeCmd(m.dark)
	case "r":
		return m, m.refreshCmd()
	case "?":
		m.modal = modalHelp
		return m, nil
	case "B":
		return m.openBoardForm(formAddBoard)
	case "e":
		return m.openBoardForm(formEditBoard)
	case "D":
		if m.selectedBoard() == nil {
			m.minibufferText = "No board selected"
			return m, nil
		}
		m.modal = modalConfirmDeleteBoard
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case "n":
		return m.openTaskForm(formAddTask)
	}

	switch m.pane {
	case paneSidebar:
		if k.String() == "enter" {
			id, ok := cursorBoardID(m.boards)
			if !ok {
				return m, nil
			}
			m.pane = paneBoard
			if id == m.state.SelectedBoardID {
				return m, nil
			}
			m.sel = columnsSelection{}
			return m, m.selectCmd(id)
		}
		var cmd tea.Cmd
		m.boards, cmd = m.boards.Update(k)
		return m, cmd

	case paneBoard:
		b := m.selectedBoard()
		switch k.String() {
		case "left", "h":
			m.sel = moveSelection(b, m.sel, -1, 0)
		case "right", "l":
			m.sel = moveSelection(b, m.sel, 1, 0)
		case "up", "k":
			m.sel = moveSelection(b, m.sel, 0, -1)
		case "down", "j":
			m.sel = moveSelection(b, m.sel, 0, 1)
		case "enter":
			if t, ok := selectedTask(b, m.sel); ok {
				m.modal = modalTaskDetail
				m.detailTaskID = t.ID
				m.detailIdx = 0
			}
		case "esc":
			m.pane = paneSidebar
		}
	}
	return m, nil
}

func (m appModel) openBoardForm(kind formKind) (tea.Model, tea.Cmd) {
	var f *formState
	if kind == formAddBoard {
		f = newBoardFormState(kind, "", forms.NewBoardForm())
	} else {
		b := m.selectedBoard()
		if b == nil {
			m.minibufferText = "No board selected"
			return m, nil
		}
		f = newBoardFormState(kind, b.ID, forms.BoardFormFrom(*b))
	}
	f.resize(m.width)
	m.form = f
	m.modal = modalBoardForm
	return m, nil
}

func (m appModel) openTaskForm(kind formKind) (tea.Model, tea.Cmd) {
	b := m.selectedBoard()
	if b == nil {
		m.minibufferText = "No board selected"
		return m, nil
	}
	statuses := statusNames(b)
	if len(statuses) == 0 {
		m.minibufferText = "Add a column to this board first (e)"
		return m, nil
	}

	var f *formState
	if kind == formAddTask {
		status := statuses[clamp(m.sel.Col, 0, len(statuses)-1)]
		f = newTaskFormState(kind, b.ID, "", forms.NewTaskForm(status), statuses)
	} else {
		t, ok := m.detailTask()
		if !ok {
			return m, nil
		}
		f = newTaskFormState(kind, b.ID, t.ID, forms.TaskFormFrom(*t), statuses)
	}
	f.resize(m.width)
	m.form = f
	m.modal = modalTaskForm
	return m, nil
}

func (m appModel) updateFormKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.modal = modalNone
		return m, nil
	}
	if f.saving {
		return m, nil
	}

	switch k.String() {
	case "esc":
		m.form = nil
		m.modal = modalNone
		if f.kind == formEditTask {
			if _, ok := m.detailTask(); ok {
				m.modal = modalTaskDetail
			}
		}
		return m, nil
	case "tab":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab":
		f.setFocus(f.focus - 1)
		return m, nil
	case "ctrl+n":
		f.addRow()
		return m, nil
	case "ctrl+d":
		f.removeRow()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		slot, _ := f.slotAt(f.focus)
		switch {
		case slot == slotDescription:
			// Newline in the description.
		case f.focus == f.slots()-1:
			return m.submitForm()
		default:
			f.setFocus(f.focus + 1)
			return m, nil
		}
	}
	return m, f.update(k)
}

// submitForm validates locally; an invalid draft stays open with inline errors and nothing
// is sent.
func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	f.submitErr = ""
	if !f.validate() {
		return m, nil
	}

	b := m.selectedBoard()
	if f.kind != formAddBoard && (b == nil || b.ID != f.boardID) {
		f.submitErr = "The board changed while editing. Press esc and try again."
		return m, nil
	}

	var cmd tea.Cmd
	switch f.kind {
	case formAddBoard:
		cmd = m.createBoardCmd(f.boardForm())
	case formEditBoard:
		cmd = m.editBoardCmd(*b, f.boardForm())
	case formAddTask:
		cmd = m.createTaskCmd(*b, f.taskForm())
	case formEditTask:
		t, _, ok := b.FindTask(f.taskID)
		if !ok {
			f.submitErr = "This task no longer exists."
			return m, nil
		}
		cmd = m.editTaskCmd(*b, *t, f.taskForm())
	}
	f.saving = true
	m.pending = "Saving"
	return m, cmd
}

func (m appModel) updateDetailKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.detailTask()
	if !ok {
		m.modal = modalNone
		return m, nil
	}
	switch k.String() {
	case "esc", "q":
		m.modal = modalNone
		m.detailTaskID = ""
	case "up", "k":
		m.detailIdx = clamp(m.detailIdx-1, 0, max(len(t.Subtasks)-1, 0))
	case "down", "j":
		m.detailIdx = clamp(m.detailIdx+1, 0, max(len(t.Subtasks)-1, 0))
	case " ", "space", "x":
		if m.detailIdx < len(t.Subtasks) {
			m.pending = "Updating subtask"
			return m, m.toggleSubtaskCmd(t.Subtasks[m.detailIdx])
		}
	case "s":
		m.statusIdx = 0
		for i, name := range statusNames(m.selectedBoard()) {
			if name == t.Status {
				m.statusIdx = i
			}
		}
		m.modal = modalStatusPicker
	case "e":
		return m.openTaskForm(formEditTask)
	case "d":
		m.modal = modalConfirmDeleteTask
		m.confirmFocus = confirmFocusCancel
	case "y":
		return m, copyCmd("task id", t.ID)
	}
	return m, nil
}

func (m appModel) updateStatusPickerKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.detailTask()
	b := m.selectedBoard()
	if !ok || b == nil {
		m.modal = modalNone
		return m, nil
	}
	names := statusNames(b)
	switch k.String() {
	case "esc", "q":
		m.modal = modalTaskDetail
	case "up", "k":
		m.statusIdx = clamp(m.statusIdx-1, 0, max(len(names)-1, 0))
	case "down", "j":
		m.statusIdx = clamp(m.statusIdx+1, 0, max(len(names)-1, 0))
	case "enter":
		m.modal = modalTaskDetail
		if m.statusIdx >= len(names) || names[m.statusIdx] == t.Status {
			return m, nil
		}
		m.pending = "Moving task"
		return m, m.moveTaskCmd(*b, *t, names[m.statusIdx])
	}
	return m, nil
}

func (m appModel) updateConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	cancel := func() (tea.Model, tea.Cmd) {
		if m.modal == modalConfirmDeleteTask {
			m.modal = modalTaskDetail
		} else {
			m.modal = modalNone
		}
		return m, nil
	}

	switch k.String() {
	case "esc", "q", "n":
		return cancel()
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			return cancel()
		}
		if m.modal == modalConfirmDeleteBoard {
			b := m.selectedBoard()
			m.modal = modalNone
			if b == nil {
				return m, nil
			}
			m.pending = "Deleting board"
			return m, m.deleteBoardCmd(*b)
		}
		t, ok := m.detailTask()
		m.modal = modalNone
		m.detailTaskID = ""
		if !ok {
			return m, nil
		}
		m.pending = "Deleting task"
		return m, m.deleteTaskCmd(*t)
	}
	return m, nil
}
