package forms

import (
	"errors"
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func TestBoardFormValidation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 51)
	cases := []struct {
		name  string
		form  BoardForm
		field string
		msg   string
	}{
		{"empty name", BoardForm{Name: "   "}, "board_name", MsgRequired},
		{"long name", BoardForm{Name: long}, "board_name", MsgTooLong},
		{"empty column", BoardForm{Name: "B", Columns: []ColumnField{{Name: ""}}}, "board_column[0].column_name", MsgRequired},
		{"long column", BoardForm{Name: "B", Columns: []ColumnField{{Name: "ok"}, {Name: long}}}, "board_column[1].column_name", MsgTooLong},
		{"duplicate columns", BoardForm{Name: "B", Columns: []ColumnField{{Name: "Todo"}, {Name: " Todo "}}}, "board_column", MsgUniqueColumns},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.form.Validate()
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got := ve.Field(tc.field); got != tc.msg {
				t.Fatalf("expected %q on %s, got=%q (all=%v)", tc.msg, tc.field, got, ve.Fields)
			}
		})
	}
}

func TestBoardFormAcceptsZeroColumnsAndFiftyRunes(t *testing.T) {
	t.Parallel()

	f := BoardForm{Name: strings.Repeat("é", 50)}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	f = BoardForm{Name: " Roadmap ", Columns: []ColumnField{{Name: " Todo "}, {Name: "Doing"}}}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	if f.Name != "Roadmap" || f.Columns[0].Name != "Todo" {
		t.Fatalf("expected names trimmed, got %#v", f)
	}
}

func TestTaskFormValidation(t *testing.T) {
	t.Parallel()

	f := TaskForm{Name: "Ship", Status: "Todo"}
	err := f.Validate()
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := ve.Field("subtask"); got != MsgNeedsSubtask {
		t.Fatalf("expected subtask message, got=%q (all=%v)", got, ve.Fields)
	}

	f = TaskForm{Name: "", Status: "", Subtasks: []SubtaskField{{Name: " "}}}
	ve, _ = AsValidationError(f.Validate())
	if ve == nil {
		t.Fatalf("expected validation failure")
	}
	for _, field := range []string{"task_name", "status", "subtask[0].subtask_name"} {
		if ve.Field(field) != MsgRequired {
			t.Fatalf("expected %q on %s, got all=%v", MsgRequired, field, ve.Fields)
		}
	}

	f = TaskForm{Name: "Ship", Status: "Todo", Description: "  notes ", Subtasks: []SubtaskField{{Name: "a"}}}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}
	if f.Description != "notes" {
		t.Fatalf("expected trimmed description, got=%q", f.Description)
	}
}

func TestValidationErrorText(t *testing.T) {
	t.Parallel()

	err := error(&ValidationError{Fields: map[string]string{"b": "two", "a": "one"}})
	if got := err.Error(); got != "invalid form: a: one; b: two" {
		t.Fatalf("unexpected error text: %q", got)
	}
	if _, ok := AsValidationError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to match")
	}
}

func TestDiffColumnsExample(t *testing.T) {
	t.Parallel()

	original := []model.Column{{ID: "id1", Name: "A"}, {ID: "id2", Name: "B"}}
	submitted := []ColumnField{{ID: "id1", Name: "A2"}, {Name: "New"}}
	p := DiffColumns(original, submitted)
	if len(p.Update) != 1 || p.Update[0].ID != "id1" || p.Update[0].Name != "A2" {
		t.Fatalf("expected one update for id1, got %#v", p.Update)
	}
	if len(p.Create) != 1 || p.Create[0].Name != "New" {
		t.Fatalf("expected one create for New, got %#v", p.Create)
	}
	if len(p.Delete) != 1 || p.Delete[0] != "id2" {
		t.Fatalf("expected delete of id2, got %#v", p.Delete)
	}
}

func TestDiffSubtasksEdgeCases(t *testing.T) {
	t.Parallel()

	original := []model.Subtask{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	submitted := []SubtaskField{
		{ID: "s2", Name: "unchanged"},
		{ID: "ghost", Name: "unknown id"},
		{ID: "s2", Name: "dup"},
		{Name: "fresh"},
	}
	p := DiffSubtasks(original, submitted)
	if len(p.Update) != 1 || p.Update[0].Name != "unchanged" {
		t.Fatalf("expected only the first s2 row as update, got %#v", p.Update)
	}
	if len(p.Create) != 3 || p.Create[0].Name != "unknown id" || p.Create[2].Name != "fresh" {
		t.Fatalf("expected creates in submitted order, got %#v", p.Create)
	}
	if len(p.Delete) != 2 || p.Delete[0] != "s1" || p.Delete[1] != "s3" {
		t.Fatalf("expected deletes s1,s3, got %#v", p.Delete)
	}

	if !DiffSubtasks(nil, nil).Empty() {
		t.Fatalf("expected empty plan")
	}
}

func TestFormsFromModel(t *testing.T) {
	t.Parallel()

	b := model.Board{ID: "b1", Name: "Roadmap", Columns: []model.Column{
		{ID: "c1", Name: "Todo", BoardID: "b1"},
		{ID: "c9", Name: "Other", BoardID: "b2"},
	}}
	bf := BoardFormFrom(b)
	if bf.Name != "Roadmap" || len(bf.Columns) != 1 || bf.Columns[0].ID != "c1" || bf.Columns[0].Key == "" {
		t.Fatalf("unexpected board form: %#v", bf)
	}

	tf := TaskFormFrom(model.Task{Name: "Ship", Status: "Todo", Subtasks: []model.Subtask{{ID: "s1", Name: "a", IsCompleted: true}}})
	if len(tf.Subtasks) != 1 || !tf.Subtasks[0].IsCompleted || tf.Subtasks[0].ID != "s1" {
		t.Fatalf("unexpected task form: %#v", tf)
	}

	nf := NewBoardForm()
	if len(nf.Columns) != 1 || nf.Columns[0].Key == "" {
		t.Fatalf("expected one blank keyed column, got %#v", nf)
	}
	nt := NewTaskForm("Todo")
	if nt.Status != "Todo" || len(nt.Subtasks) != 1 {
		t.Fatalf("unexpected new task form: %#v", nt)
	}
}
