package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
)

type formKind int

const (
	formAddBoard formKind = iota
	formEditBoard
	formAddTask
	formEditTask
)

func (k formKind) isTask() bool { return k == formAddTask || k == formEditTask }

func (k formKind) title() string {
	switch k {
	case formAddBoard:
		return "Add New Board"
	case formEditBoard:
		return "Edit Board"
	case formAddTask:
		return "Add New Task"
	default:
		return "Edit Task"
	}
}

// formRow is one column (board forms) or subtask (task forms) row.
type formRow struct {
	key       string
	id        string
	completed bool
	input     textinput.Model
}

type formSlot int

const (
	slotName formSlot = iota
	slotDescription
	slotRow
	slotStatus
)

// formState is the open board or task draft. Field values live in the bubbles inputs and
// are read back into a forms.BoardForm / forms.TaskForm on submit.
type formState struct {
	kind    formKind
	boardID string
	taskID  string

	name      textinput.Model
	desc      textarea.Model
	rows      []formRow
	statuses  []string
	statusIdx int

	focus int
	errs  *forms.ValidationError
	// submitErr is a backend failure from the last save; the draft stays open.
	submitErr string
	saving    bool
	termW     int
}

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newBoardFormState(kind formKind, boardID string, draft forms.BoardForm) *formState {
	f := &formState{kind: kind, boardID: boardID, name: newFormInput("e.g. Web Design")}
	f.name.SetValue(draft.Name)
	for _, c := range draft.Columns {
		f.rows = append(f.rows, f.newRow(c.Key, c.ID, c.Name, false))
	}
	f.setFocus(0)
	return f
}

func newTaskFormState(kind formKind, boardID, taskID string, draft forms.TaskForm, statuses []string) *formState {
	f := &formState{
		kind:     kind,
		boardID:  boardID,
		taskID:   taskID,
		name:     newFormInput("e.g. Take coffee break"),
		statuses: statuses,
	}
	f.name.SetValue(draft.Name)

	f.desc = textarea.New()
	f.desc.Placeholder = "e.g. It's always good to take a break."
	f.desc.CharLimit = 0
	f.desc.ShowLineNumbers = false
	f.desc.SetWidth(40)
	f.desc.SetHeight(4)
	f.desc.Cursor.SetMode(cursor.CursorStatic)
	f.desc.SetValue(draft.Description)

	for _, s := range draft.Subtasks {
		f.rows = append(f.rows, f.newRow(s.Key, s.ID, s.Name, s.IsCompleted))
	}
	for i, s := range statuses {
		if strings.TrimSpace(s) == strings.TrimSpace(draft.Status) {
			f.statusIdx = i
		}
	}
	f.setFocus(0)
	return f
}

func (f *formState) newRow(key, id, name string, completed bool) formRow {
	placeholder := "e.g. Todo"
	if f.kind.isTask() {
		placeholder = "e.g. Make coffee"
	}
	in := newFormInput(placeholder)
	if f.termW > 0 {
		in.Width = inputWidth(f.termW) - 2
	}
	in.SetValue(name)
	return formRow{key: key, id: id, completed: completed, input: in}
}

func (f *formState) slots() int {
	if f.kind.isTask() {
		return 3 + len(f.rows)
	}
	return 1 + len(f.rows)
}

// slotAt maps a focus index to its field; row is the row index for slotRow.
func (f *formState) slotAt(i int) (slot formSlot, row int) {
	if i == 0 {
		return slotName, 0
	}
	if !f.kind.isTask() {
		return slotRow, i - 1
	}
	switch {
	case i == 1:
		return slotDescription, 0
	case i-2 < len(f.rows):
		return slotRow, i - 2
	default:
		return slotStatus, 0
	}
}

func (f *formState) rowSlot(row int) int {
	if f.kind.isTask() {
		return row + 2
	}
	return row + 1
}

func (f *formState) setFocus(i int) {
	n := f.slots()
	f.focus = ((i % n) + n) % n

	f.name.Blur()
	if f.kind.isTask() {
		f.desc.Blur()
	}
	for r := range f.rows {
		f.rows[r].input.Blur()
	}
	switch slot, row := f.slotAt(f.focus); slot {
	case slotName:
		f.name.Focus()
	case slotDescription:
		f.desc.Focus()
	case slotRow:
		f.rows[row].input.Focus()
	}
}

func (f *formState) addRow() {
	key := forms.NewColumnField("").Key
	if f.kind.isTask() {
		key = forms.NewSubtaskField("").Key
	}
	f.rows = append(f.rows, f.newRow(key, "", "", false))
	f.setFocus(f.rowSlot(len(f.rows) - 1))
}

// removeRow drops the focused row. Focus stays at the same position when possible.
func (f *formState) removeRow() bool {
	slot, row := f.slotAt(f.focus)
	if slot != slotRow {
		return false
	}
	f.rows = append(f.rows[:row], f.rows[row+1:]...)
	switch {
	case row < len(f.rows):
		f.setFocus(f.rowSlot(row))
	case len(f.rows) > 0:
		f.setFocus(f.rowSlot(len(f.rows) - 1))
	default:
		f.setFocus(0)
	}
	return true
}

func (f *formState) boardForm() forms.BoardForm {
	out := forms.BoardForm{Name: f.name.Value(), Columns: make([]forms.ColumnField, 0, len(f.rows))}
	for _, r := range f.rows {
		out.Columns = append(out.Columns, forms.ColumnField{Key: r.key, ID: r.id, Name: r.input.Value()})
	}
	return out
}

func (f *formState) taskForm() forms.TaskForm {
	out := forms.TaskForm{
		Name:        f.name.Value(),
		Description: f.desc.Value(),
		Status:      f.status(),
		Subtasks:    make([]forms.SubtaskField, 0, len(f.rows)),
	}
	for _, r := range f.rows {
		out.Subtasks = append(out.Subtasks, forms.SubtaskField{Key: r.key, ID: r.id, Name: r.input.Value(), IsCompleted: r.completed})
	}
	return out
}

func (f *formState) status() string {
	if f.statusIdx < 0 || f.statusIdx >= len(f.statuses) {
		return ""
	}
	return f.statuses[f.statusIdx]
}

// validate checks the draft locally. It reports whether the draft may be sent.
func (f *formState) validate() bool {
	var err error
	if f.kind.isTask() {
		draft := f.taskForm()
		err = draft.Validate()
	} else {
		draft := f.boardForm()
		err = draft.Validate()
	}
	f.errs = nil
	if err == nil {
		return true
	}
	if ve, ok := forms.AsValidationError(err); ok {
		f.errs = ve
	} else {
		f.submitErr = err.Error()
	}
	return false
}

// update forwards a key or message to the focused field.
func (f *formState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch slot, row := f.slotAt(f.focus); slot {
	case slotName:
		f.name, cmd = f.name.Update(msg)
	case slotDescription:
		f.desc, cmd = f.desc.Update(msg)
	case slotRow:
		f.rows[row].input, cmd = f.rows[row].input.Update(msg)
	case slotStatus:
		if k, ok := msg.(tea.KeyMsg); ok && len(f.statuses) > 0 {
			switch k.String() {
			case "left", "h", "up", "k":
				f.statusIdx = (f.statusIdx - 1 + len(f.statuses)) % len(f.statuses)
			case "right", "l", "down", "j", " ":
				f.statusIdx = (f.statusIdx + 1) % len(f.statuses)
			}
		}
	}
	return cmd
}

func (f *formState) fieldError(path string) string {
	if f.errs == nil {
		return ""
	}
	return f.errs.Field(path)
}

func (f *formState) paths() (name, group, row string) {
	if f.kind.isTask() {
		return "task_name", "subtask", "subtask[%d].subtask_name"
	}
	return "board_name", "board_column", "board_column[%d].column_name"
}

// inputWidth leaves room after each field for its inline error.
func inputWidth(termW int) int {
	w := modalBodyWidth(termW) - 18
	if w < 10 {
		w = 10
	}
	return w
}

func (f *formState) resize(termW int) {
	f.termW = termW
	w := inputWidth(termW) - 2
	f.name.Width = w
	if f.kind.isTask() {
		f.desc.SetWidth(w)
	}
	for i := range f.rows {
		f.rows[i].input.Width = w
	}
}

func (f *formState) view(termW int) string {
	bodyW := modalBodyWidth(termW)
	inputW := inputWidth(termW)
	label := lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
	box := lipgloss.NewStyle().Background(colorInputBg).Padding(0, 1)
	focusBox := box.Foreground(colorSelectedFg).Background(colorSelectedBg)

	field := func(in string, focused bool, errMsg string) string {
		st := box
		if focused {
			st = focusBox
		}
		line := st.Width(inputW).Render(truncateText(in, inputW-2))
		if errMsg != "" {
			line += " " + styleError().Render(errMsg)
		}
		return line
	}

	namePath, groupPath, rowPath := f.paths()
	lines := make([]string, 0, 16)

	nameLabel, rowsLabel, addLabel := "Board Name", "Board Columns", "+ Add New Column (ctrl+n)"
	if f.kind.isTask() {
		nameLabel, rowsLabel, addLabel = "Title", "Subtasks", "+ Add New Subtask (ctrl+n)"
	}

	lines = append(lines, label.Render(nameLabel))
	lines = append(lines, field(f.name.View(), f.focus == 0, f.fieldError(namePath)), "")

	if f.kind.isTask() {
		lines = append(lines, label.Render("Description"))
		descSt := box
		if f.focus == 1 {
			descSt = focusBox
		}
		lines = append(lines, descSt.Width(inputW).Render(f.desc.View()), "")
	}

	lines = append(lines, label.Render(rowsLabel))
	for i := range f.rows {
		focused := f.focus == f.rowSlot(i)
		lines = append(lines, field(f.rows[i].input.View(), focused, f.fieldError(fmt.Sprintf(rowPath, i))))
	}
	if msg := f.fieldError(groupPath); msg != "" {
		lines = append(lines, styleError().Render(msg))
	}
	lines = append(lines, styleAccent().Render(addLabel), "")

	if f.kind.isTask() {
		lines = append(lines, label.Render("Status"))
		status := f.status()
		if status == "" {
			status = "(no columns)"
		}
		lines = append(lines, field("◂ "+status+" ▸", f.focus == f.slots()-1, f.fieldError("status")), "")
	}

	switch {
	case f.saving:
		lines = append(lines, styleMuted().Render("Saving…"))
	case f.submitErr != "":
		lines = append(lines, styleError().Render(truncateText(f.submitErr, bodyW)))
	}
	help := "tab: next field   ctrl+d: remove row   ctrl+s: save   esc: cancel"
	if f.kind.isTask() {
		help += "   ←/→: status"
	}
	lines = append(lines, styleMuted().Render(strings.Join(wrapText(help, bodyW), "\n")))

	return renderModalBox(termW, f.kind.title(), strings.Join(lines, "\n"))
}

func statusNames(b *model.Board) []string {
	if b == nil {
		return []string{}
	}
	return b.ColumnNames()
}
