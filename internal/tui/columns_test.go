package tui

import (
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func testBoard() *model.Board {
	return &model.Board{
		ID:   "b1",
		Name: "Platform Launch",
		Columns: []model.Column{
			{ID: "c1", Name: "Todo", BoardID: "b1", Tasks: []model.Task{
				{ID: "t1", Name: "Build UI", Status: "Todo", ColumnID: "c1", Subtasks: []model.Subtask{
					{ID: "s1", Name: "Sketch", IsCompleted: true, TaskID: "t1"},
					{ID: "s2", Name: "Review", TaskID: "t1"},
				}},
			}},
			{ID: "c2", Name: "Doing", BoardID: "b1", Tasks: []model.Task{
				{ID: "t2", Name: "Write API", Status: "Doing", ColumnID: "c2"},
				{ID: "t3", Name: "Deploy", Status: "Doing", ColumnID: "c2"},
			}},
			{ID: "c3", Name: "Done", BoardID: "b1", Tasks: []model.Task{}},
		},
	}
}

func TestClampSelectionFollowsTaskID(t *testing.T) {
	b := testBoard()
	sel := columnsSelection{Col: 1, Item: 1, TaskID: "t3"}

	// t3 moves to Done.
	moved := b.Columns[1].Tasks[1]
	b.Columns[1].Tasks = b.Columns[1].Tasks[:1]
	b.Columns[2].Tasks = append(b.Columns[2].Tasks, moved)

	got := clampSelection(b, sel)
	if got.Col != 2 || got.Item != 0 || got.TaskID != "t3" {
		t.Fatalf("expected cursor to follow t3 into Done, got %#v", got)
	}
}

func TestClampSelectionAfterDelete(t *testing.T) {
	b := testBoard()
	sel := columnsSelection{Col: 1, Item: 1, TaskID: "t3"}
	b.Columns[1].Tasks = b.Columns[1].Tasks[:1]

	got := clampSelection(b, sel)
	if got.Col != 1 || got.Item != 0 || got.TaskID != "t2" {
		t.Fatalf("expected cursor clamped to t2, got %#v", got)
	}

	if got := clampSelection(nil, sel); got != (columnsSelection{}) {
		t.Fatalf("expected zero selection without a board, got %#v", got)
	}
}

func TestMoveSelection(t *testing.T) {
	b := testBoard()
	sel := clampSelection(b, columnsSelection{})
	if sel.TaskID != "t1" {
		t.Fatalf("expected first task selected, got %#v", sel)
	}

	sel = moveSelection(b, sel, 1, 0)
	if sel.TaskID != "t2" {
		t.Fatalf("right: expected t2, got %#v", sel)
	}
	sel = moveSelection(b, sel, 0, 1)
	if sel.TaskID != "t3" {
		t.Fatalf("down: expected t3, got %#v", sel)
	}
	sel = moveSelection(b, sel, 0, 1)
	if sel.TaskID != "t3" {
		t.Fatalf("down past the end: expected t3, got %#v", sel)
	}
	sel = moveSelection(b, sel, 1, 0)
	if sel.Col != 2 || sel.TaskID != "" {
		t.Fatalf("right into the empty column: got %#v", sel)
	}
	if _, ok := selectedTask(b, sel); ok {
		t.Fatalf("expected no task selected in an empty column")
	}
	sel = moveSelection(b, sel, 5, 0)
	if sel.Col != 2 {
		t.Fatalf("expected column clamped, got %#v", sel)
	}
}

func TestRenderColumns(t *testing.T) {
	b := testBoard()
	out := renderColumns(b, clampSelection(b, columnsSelection{}), 140, 30, true)

	for _, want := range []string{"TODO (1)", "DOING (2)", "DONE (0)", "Build UI", "1 of 2 subtasks", "(no tasks)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	out := renderColumns(&model.Board{ID: "b1", Name: "Empty"}, columnsSelection{}, 100, 20, true)
	if !strings.Contains(out, "This board is empty.") || !strings.Contains(out, "+ Add New Column") {
		t.Fatalf("expected empty board hint, got:\n%s", out)
	}
}

func TestVisibleColumnsKeepsSelectionInView(t *testing.T) {
	_, start, end := visibleColumns(10, 8, 80)
	if start > 8 || end <= 8 {
		t.Fatalf("selected column 8 not in window [%d,%d)", start, end)
	}
}
