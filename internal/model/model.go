package model

import (
	"fmt"
	"strings"
)

// Board is a top-level kanban board. Columns is only populated on a reconciled aggregate;
// the flat board list returned by the backend leaves it empty.
type Board struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"board_name"`
	Columns []Column `json:"board_column"`
}

type Column struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"column_name"`
	BoardID string `json:"board_id"`
	Tasks   []Task `json:"task"`
}

// Task.Status duplicates the owning column's name. The backend does not enforce this; every
// mutation keeps the two in sync.
type Task struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"task_name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ColumnID    string    `json:"column_id"`
	Subtasks    []Subtask `json:"subtask"`
}

type Subtask struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"subtask_name"`
	IsCompleted bool   `json:"is_completed"`
	TaskID      string `json:"task_id"`
}

// Flat returns the board without its nested children.
func (b Board) Flat() Board {
	return Board{ID: b.ID, Name: b.Name, Columns: []Column{}}
}

func (b *Board) FindColumn(id string) (*Column, bool) {
	id = strings.TrimSpace(id)
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

// ColumnByName matches the trimmed column name exactly.
func (b *Board) ColumnByName(name string) (*Column, bool) {
	name = strings.TrimSpace(name)
	for i := range b.Columns {
		if strings.TrimSpace(b.Columns[i].Name) == name {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

// FindTask returns the task and the column that owns it.
func (b *Board) FindTask(id string) (*Task, *Column, bool) {
	id = strings.TrimSpace(id)
	for ci := range b.Columns {
		col := &b.Columns[ci]
		for ti := range col.Tasks {
			if col.Tasks[ti].ID == id {
				return &col.Tasks[ti], col, true
			}
		}
	}
	return nil, nil, false
}

// FindSubtask returns the subtask and its parent task.
func (b *Board) FindSubtask(id string) (*Subtask, *Task, bool) {
	id = strings.TrimSpace(id)
	for ci := range b.Columns {
		for ti := range b.Columns[ci].Tasks {
			t := &b.Columns[ci].Tasks[ti]
			for si := range t.Subtasks {
				if t.Subtasks[si].ID == id {
					return &t.Subtasks[si], t, true
				}
			}
		}
	}
	return nil, nil, false
}

func (b Board) ColumnNames() []string {
	out := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		out = append(out, c.Name)
	}
	return out
}

func (t Task) CompletedCount() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.IsCompleted {
			n++
		}
	}
	return n
}

// SubtaskProgress is the "n of m subtasks" label shown on task cards.
func (t Task) SubtaskProgress() string {
	return fmt.Sprintf("%d of %d subtasks", t.CompletedCount(), len(t.Subtasks))
}

// Text renders the board as an indented tree for the CLI text format.
func (b Board) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", b.Name, b.ID)
	if len(b.Columns) == 0 {
		sb.WriteString("  (no columns)\n")
	}
	for _, c := range b.Columns {
		fmt.Fprintf(&sb, "  %s (%d)\n", c.Name, len(c.Tasks))
		for _, t := range c.Tasks {
			fmt.Fprintf(&sb, "    - %s [%s] %s\n", t.Name, t.ID, t.SubtaskProgress())
			for _, s := range t.Subtasks {
				mark := "[ ]"
				if s.IsCompleted {
					mark = "[x]"
				}
				fmt.Fprintf(&sb, "        %s %s [%s]\n", mark, s.Name, s.ID)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BoardList is the flat board list, rendered one board per line in text output.
type BoardList []Board

func (l BoardList) Text() string {
	if len(l) == 0 {
		return "(no boards)"
	}
	lines := make([]string, 0, len(l)+1)
	lines = append(lines, fmt.Sprintf("ALL BOARDS (%d)", len(l)))
	for _, b := range l {
		lines = append(lines, fmt.Sprintf("  %s  %s", b.ID, b.Name))
	}
	return strings.Join(lines, "\n")
}
