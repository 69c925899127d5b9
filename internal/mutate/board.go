package mutate

import (
	"context"
	"strings"

	"kanban-cli/internal/forms"
	"kanban-cli/internal/model"
)

// CreateBoard creates the board, then its columns one at a time in submitted order.
// The returned board carries the created columns.
func CreateBoard(ctx context.Context, c Client, form forms.BoardForm) (model.Board, error) {
	const op = "create board"
	if err := form.Validate(); err != nil {
		return model.Board{}, err
	}
	b, err := c.CreateBoard(ctx, model.Board{Name: form.Name})
	if err != nil {
		return model.Board{}, opErr(op, "", err)
	}
	b = b.Flat()
	for _, f := range form.Columns {
		col, err := c.CreateColumn(ctx, model.Column{Name: f.Name, BoardID: b.ID})
		if err != nil {
			return b, opErr(op, "create column "+f.Name, err)
		}
		b.Columns = append(b.Columns, col)
	}
	return b, nil
}

// EditBoard renames the board and applies the column plan. board must be the reconciled
// aggregate the form was prefilled from.
func EditBoard(ctx context.Context, c Client, board model.Board, form forms.BoardForm, opts Options) error {
	const op = "edit board"
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := c.UpdateBoard(ctx, board.ID, model.Board{ID: board.ID, Name: form.Name}); err != nil {
		return opErr(op, "", err)
	}

	plan := forms.DiffColumns(board.Columns, form.Columns)
	g, gctx := opts.group(ctx)

	for _, f := range plan.Update {
		f := f
		orig, _ := board.FindColumn(f.ID)
		g.Go(func() error {
			if _, err := c.UpdateColumn(gctx, f.ID, model.Column{ID: f.ID, Name: f.Name, BoardID: board.ID}); err != nil {
				return opErr(op, "update column "+f.ID, err)
			}
			if orig == nil || strings.TrimSpace(orig.Name) == f.Name {
				return nil
			}
			// Renamed: task status mirrors the column name.
			for _, t := range orig.Tasks {
				t.Status = f.Name
				t.ColumnID = f.ID
				if _, err := c.UpdateTask(gctx, t.ID, t); err != nil {
					return opErr(op, "update task status "+t.ID, err)
				}
			}
			return nil
		})
	}

	if len(plan.Create) > 0 {
		g.Go(func() error {
			for _, f := range plan.Create {
				if _, err := c.CreateColumn(gctx, model.Column{Name: f.Name, BoardID: board.ID}); err != nil {
					return opErr(op, "create column "+f.Name, err)
				}
			}
			return nil
		})
	}

	for _, id := range plan.Delete {
		col, ok := board.FindColumn(id)
		if !ok {
			continue
		}
		dc := *col
		g.Go(func() error {
			return deleteColumnTree(gctx, c, op, dc, opts.Cascade)
		})
	}

	return g.Wait()
}

// DeleteBoard removes the board. With opts.Cascade, columns (and their tasks and subtasks)
// go first.
func DeleteBoard(ctx context.Context, c Client, board model.Board, opts Options) error {
	const op = "delete board"
	if strings.TrimSpace(board.ID) == "" {
		return NotFoundError{Kind: "board", ID: board.ID}
	}
	if opts.Cascade && len(board.Columns) > 0 {
		g, gctx := opts.group(ctx)
		for _, col := range board.Columns {
			col := col
			g.Go(func() error {
				return deleteColumnTree(gctx, c, op, col, true)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return opErr(op, "", c.DeleteBoard(ctx, board.ID))
}
