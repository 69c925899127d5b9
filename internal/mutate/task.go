package mutate

import (
	"context"
	"strings"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
)

func columnForStatus(board model.Board, status string) (*model.Column, error) {
	col, ok := board.ColumnByName(status)
	if !ok {
		return nil, NotFoundError{Kind: "column", ID: strings.TrimSpace(status)}
	}
	return col, nil
}

// CreateTask creates the task in the column named by form.Status, then its subtasks in
// submitted order. New subtasks always start incomplete.
func CreateTask(ctx context.Context, c Client, board model.Board, form forms.TaskForm) (model.Task, error) {
	const op = "create task"
	if err := form.Validate(); err != nil {
		return model.Task{}, err
	}
	col, err := columnForStatus(board, form.Status)
	if err != nil {
		return model.Task{}, err
	}
	t, err := c.CreateTask(ctx, model.Task{
		Name:        form.Name,
		Description: form.Description,
		Status:      col.Name,
		ColumnID:    col.ID,
	})
	if err != nil {
		return model.Task{}, opErr(op, "", err)
	}
	t.Subtasks = nil
	for _, f := range form.Subtasks {
		s, err := c.CreateSubtask(ctx, model.Subtask{Name: f.Name, TaskID: t.ID})
		if err != nil {
			return t, opErr(op, "create subtask "+f.Name, err)
		}
		t.Subtasks = append(t.Subtasks, s)
	}
	return t, nil
}

// EditTask replaces the task fields and applies the subtask plan. task must come from the
// reconciled board. New subtask rows are created with their IsCompleted flag as submitted.
func EditTask(ctx context.Context, c Client, board model.Board, task model.Task, form forms.TaskForm, opts Options) error {
	const op = "edit task"
	if err := form.Validate(); err != nil {
		return err
	}
	col, err := columnForStatus(board, form.Status)
	if err != nil {
		return err
	}
	if _, err := c.UpdateTask(ctx, task.ID, model.Task{
		ID:          task.ID,
		Name:        form.Name,
		Description: form.Description,
		Status:      col.Name,
		ColumnID:    col.ID,
	}); err != nil {
		return opErr(op, "", err)
	}

	plan := forms.DiffSubtasks(task.Subtasks, form.Subtasks)
	g, gctx := opts.group(ctx)
	for _, f := range plan.Update {
		f := f
		g.Go(func() error {
			_, err := c.UpdateSubtask(gctx, f.ID, model.Subtask{ID: f.ID, Name: f.Name, IsCompleted: f.IsCompleted, TaskID: task.ID})
			return opErr(op, "update subtask "+f.ID, err)
		})
	}
	if len(plan.Create) > 0 {
		g.Go(func() error {
			for _, f := range plan.Create {
				if _, err := c.CreateSubtask(gctx, model.Subtask{Name: f.Name, IsCompleted: f.IsCompleted, TaskID: task.ID}); err != nil {
					return opErr(op, "create subtask "+f.Name, err)
				}
			}
			return nil
		})
	}
	for _, id := range plan.Delete {
		id := id
		g.Go(func() error {
			return opErr(op, "delete subtask "+id, c.DeleteSubtask(gctx, id))
		})
	}
	return g.Wait()
}

// MoveTask changes the task's status to columnName and moves it to that column.
func MoveTask(ctx context.Context, c Client, board model.Board, task model.Task, columnName string) (model.Task, error) {
	const op = "move task"
	col, err := columnForStatus(board, columnName)
	if err != nil {
		return model.Task{}, err
	}
	next := task
	next.Status = col.Name
	next.ColumnID = col.ID
	out, err := c.UpdateTask(ctx, task.ID, next)
	if err != nil {
		return model.Task{}, opErr(op, "", err)
	}
	return out, nil
}

func ToggleSubtask(ctx context.Context, c Client, s model.Subtask) (model.Subtask, error) {
	next := s
	next.IsCompleted = !s.IsCompleted
	out, err := c.UpdateSubtask(ctx, s.ID, next)
	if err != nil {
		return model.Subtask{}, opErr("toggle subtask", "", err)
	}
	return out, nil
}

func DeleteTask(ctx context.Context, c Client, task model.Task, opts Options) error {
	if strings.TrimSpace(task.ID) == "" {
		return NotFoundError{Kind: "task", ID: task.ID}
	}
	return deleteTaskTree(ctx, c, "delete task", task, opts.Cascade)
}
