package model

import (
	"strings"
	"testing"
)

func sampleBoard() Board {
	return Board{
		ID:   "b1",
		Name: "Platform Launch",
		Columns: []Column{
			{ID: "c1", Name: "Todo", BoardID: "b1", Tasks: []Task{
				{ID: "t1", Name: "Build UI", Status: "Todo", ColumnID: "c1", Subtasks: []Subtask{
					{ID: "s1", Name: "Sketch", IsCompleted: true, TaskID: "t1"},
					{ID: "s2", Name: "Wire", TaskID: "t1"},
				}},
			}},
			{ID: "c2", Name: " Doing ", BoardID: "b1"},
		},
	}
}

func TestBoardLookups(t *testing.T) {
	t.Parallel()

	b := sampleBoard()
	if c, ok := b.FindColumn("c2"); !ok || c.ID != "c2" {
		t.Fatalf("expected FindColumn(c2); got %v %v", c, ok)
	}
	if c, ok := b.ColumnByName("Doing"); !ok || c.ID != "c2" {
		t.Fatalf("expected ColumnByName to match trimmed name; got %v %v", c, ok)
	}
	task, col, ok := b.FindTask("t1")
	if !ok || task.Name != "Build UI" || col.ID != "c1" {
		t.Fatalf("expected FindTask(t1) in c1; got task=%v col=%v ok=%v", task, col, ok)
	}
	sub, parent, ok := b.FindSubtask("s2")
	if !ok || sub.Name != "Wire" || parent.ID != "t1" {
		t.Fatalf("expected FindSubtask(s2) under t1; got %v %v %v", sub, parent, ok)
	}
	if _, _, ok := b.FindTask("nope"); ok {
		t.Fatalf("expected missing task lookup to fail")
	}
}

func TestTaskSubtaskProgress(t *testing.T) {
	t.Parallel()

	b := sampleBoard()
	if got := b.Columns[0].Tasks[0].SubtaskProgress(); got != "1 of 2 subtasks" {
		t.Fatalf("unexpected progress label: %q", got)
	}
}

func TestBoardText(t *testing.T) {
	t.Parallel()

	out := sampleBoard().Text()
	for _, want := range []string{"Platform Launch (b1)", "Todo (1)", "- Build UI [t1] 1 of 2 subtasks", "[x] Sketch", "[ ] Wire"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in text output, got:\n%s", want, out)
		}
	}

	empty := Board{ID: "b2", Name: "Empty"}.Text()
	if !strings.Contains(empty, "(no columns)") {
		t.Fatalf("expected empty board hint, got %q", empty)
	}
}
