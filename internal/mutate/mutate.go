// Package mutate runs validated board and task drafts through the API client.
//
// Every flow validates first and makes no network call when validation fails. Callers are
// responsible for refreshing the selection afterwards; nothing here patches local state.
package mutate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kanban-cli/internal/model"
)

// Client is the write side of the api client.
type Client interface {
	CreateBoard(ctx context.Context, b model.Board) (model.Board, error)
	UpdateBoard(ctx context.Context, id string, b model.Board) (model.Board, error)
	DeleteBoard(ctx context.Context, id string) error

	CreateColumn(ctx context.Context, col model.Column) (model.Column, error)
	UpdateColumn(ctx context.Context, id string, col model.Column) (model.Column, error)
	DeleteColumn(ctx context.Context, id string) error

	CreateTask(ctx context.Context, t model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, id string, t model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateSubtask(ctx context.Context, s model.Subtask) (model.Subtask, error)
	UpdateSubtask(ctx context.Context, id string, s model.Subtask) (model.Subtask, error)
	DeleteSubtask(ctx context.Context, id string) error
}

type Options struct {
	// Cascade deletes known children before their parent instead of relying on the backend.
	Cascade bool
	// Limit bounds concurrent calls within one plan. Values below 1 mean DefaultLimit.
	Limit int
}

const DefaultLimit = 4

func DefaultOptions() Options {
	return Options{Cascade: true, Limit: DefaultLimit}
}

func (o Options) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	if o.Limit > 0 {
		g.SetLimit(o.Limit)
	} else {
		g.SetLimit(DefaultLimit)
	}
	return g, gctx
}

func deleteSubtasks(ctx context.Context, c Client, op string, subs []model.Subtask) error {
	for _, s := range subs {
		if err := c.DeleteSubtask(ctx, s.ID); err != nil {
			return opErr(op, "delete subtask "+s.ID, err)
		}
	}
	return nil
}

func deleteTaskTree(ctx context.Context, c Client, op string, t model.Task, cascade bool) error {
	if cascade {
		if err := deleteSubtasks(ctx, c, op, t.Subtasks); err != nil {
			return err
		}
	}
	return opErr(op, "delete task "+t.ID, c.DeleteTask(ctx, t.ID))
}

func deleteColumnTree(ctx context.Context, c Client, op string, col model.Column, cascade bool) error {
	if cascade {
		for _, t := range col.Tasks {
			if err := deleteTaskTree(ctx, c, op, t, true); err != nil {
				return err
			}
		}
	}
	return opErr(op, "delete column "+col.ID, c.DeleteColumn(ctx, col.ID))
}
