// Package forms holds the board and task drafts edited in modals and on the command line,
// their validation rules, and the child diffs applied on submit.
package forms

import (
	"strings"

	"github.com/google/uuid"

	"kanban-cli/internal/model"
)

const MaxNameLen = 50

// ColumnField is one editable column row. ID is empty for rows that do not exist on the
// backend yet; Key identifies the row across edits regardless.
type ColumnField struct {
	Key  string `form:"-" validate:"-"`
	ID   string `form:"id" validate:"-"`
	Name string `form:"column_name" validate:"required,max=50"`
}

type BoardForm struct {
	Name    string        `form:"board_name" validate:"required,max=50"`
	Columns []ColumnField `form:"board_column" validate:"unique_names,dive"`
}

type SubtaskField struct {
	Key         string `form:"-" validate:"-"`
	ID          string `form:"id" validate:"-"`
	Name        string `form:"subtask_name" validate:"required,max=50"`
	IsCompleted bool   `form:"is_completed" validate:"-"`
}

type TaskForm struct {
	Name        string         `form:"task_name" validate:"required,max=50"`
	Description string         `form:"description" validate:"-"`
	Status      string         `form:"status" validate:"required"`
	Subtasks    []SubtaskField `form:"subtask" validate:"min=1,dive"`
}

func newKey() string { return uuid.NewString() }

// NewBoardForm returns the add-board draft: an empty name and one blank column row.
func NewBoardForm() BoardForm {
	return BoardForm{Columns: []ColumnField{NewColumnField("")}}
}

func NewColumnField(name string) ColumnField {
	return ColumnField{Key: newKey(), Name: name}
}

// BoardFormFrom prefills the edit-board draft. Columns belonging to other boards are skipped.
func BoardFormFrom(b model.Board) BoardForm {
	f := BoardForm{Name: b.Name, Columns: []ColumnField{}}
	for _, c := range b.Columns {
		if c.BoardID != "" && c.BoardID != b.ID {
			continue
		}
		f.Columns = append(f.Columns, ColumnField{Key: keyFor(c.ID), ID: c.ID, Name: c.Name})
	}
	return f
}

// NewTaskForm returns the add-task draft with a blank subtask row and status preset to
// status (usually the first column's name).
func NewTaskForm(status string) TaskForm {
	return TaskForm{Status: status, Subtasks: []SubtaskField{NewSubtaskField("")}}
}

func NewSubtaskField(name string) SubtaskField {
	return SubtaskField{Key: newKey(), Name: name}
}

func TaskFormFrom(t model.Task) TaskForm {
	f := TaskForm{Name: t.Name, Description: t.Description, Status: t.Status, Subtasks: []SubtaskField{}}
	for _, s := range t.Subtasks {
		f.Subtasks = append(f.Subtasks, SubtaskField{Key: keyFor(s.ID), ID: s.ID, Name: s.Name, IsCompleted: s.IsCompleted})
	}
	return f
}

func keyFor(id string) string {
	if id != "" {
		return id
	}
	return newKey()
}

// Normalize trims every name in place. Rows keep their keys and ids.
func (f *BoardForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	for i := range f.Columns {
		f.Columns[i].Name = strings.TrimSpace(f.Columns[i].Name)
		f.Columns[i].ID = strings.TrimSpace(f.Columns[i].ID)
	}
}

func (f *TaskForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Status = strings.TrimSpace(f.Status)
	for i := range f.Subtasks {
		f.Subtasks[i].Name = strings.TrimSpace(f.Subtasks[i].Name)
		f.Subtasks[i].ID = strings.TrimSpace(f.Subtasks[i].ID)
	}
}

// Validate normalizes then checks the draft.
func (f *BoardForm) Validate() error {
	f.Normalize()
	return validateStruct(f)
}

func (f *TaskForm) Validate() error {
	f.Normalize()
	return validateStruct(f)
}
