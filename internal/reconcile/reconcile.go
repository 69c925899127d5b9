// Package reconcile assembles a full board aggregate from the backend's flat collections.
//
// Columns are fetched for the board, then tasks for every column, then subtasks for every
// task. Each level waits for the level above; fetches within a level run concurrently up to
// a bounded limit. Result order follows list-response order, never completion order.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"kanban-cli/internal/model"
	"kanban-cli/internal/statusutil"
)

const DefaultLimit = 4

// Lister is the subset of the api client the reconciler reads from.
type Lister interface {
	ListColumns(ctx context.Context, boardID string) ([]model.Column, error)
	ListTasks(ctx context.Context, columnID string) ([]model.Task, error)
	ListSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error)
}

type Reconciler struct {
	src    Lister
	limit  int
	logger *log.Logger
}

type Option func(*Reconciler)

// WithLimit bounds concurrent fetches per level. Values below 1 fall back to DefaultLimit.
func WithLimit(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.limit = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(src Lister, opts ...Option) *Reconciler {
	r := &Reconciler{src: src, limit: DefaultLimit, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile returns board with Columns populated (each with Tasks, each with Subtasks).
// Any failed fetch abandons the whole aggregate; partial results are never returned.
func (r *Reconciler) Reconcile(ctx context.Context, board model.Board) (model.Board, error) {
	out := board.Flat()

	cols, err := r.src.ListColumns(ctx, board.ID)
	if err != nil {
		return model.Board{}, fmt.Errorf("list columns for board %s: %w", board.ID, err)
	}
	cols = keepColumns(cols, board.ID)

	// Tasks per column, written into index slots so ordering survives concurrency.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	taskSlots := make([][]model.Task, len(cols))
	for i := range cols {
		i, colID := i, cols[i].ID
		g.Go(func() error {
			tasks, err := r.src.ListTasks(gctx, colID)
			if err != nil {
				return fmt.Errorf("list tasks for column %s: %w", colID, err)
			}
			taskSlots[i] = keepTasks(tasks, colID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Board{}, err
	}

	type ref struct{ col, task int }
	var refs []ref
	for ci := range cols {
		cols[ci].Tasks = taskSlots[ci]
		for ti := range cols[ci].Tasks {
			refs = append(refs, ref{ci, ti})
		}
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	subSlots := make([][]model.Subtask, len(refs))
	for i, rf := range refs {
		i, taskID := i, cols[rf.col].Tasks[rf.task].ID
		g.Go(func() error {
			subs, err := r.src.ListSubtasks(gctx, taskID)
			if err != nil {
				return fmt.Errorf("list subtasks for task %s: %w", taskID, err)
			}
			subSlots[i] = keepSubtasks(subs, taskID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Board{}, err
	}
	for i, rf := range refs {
		cols[rf.col].Tasks[rf.task].Subtasks = subSlots[i]
	}

	for ci := range cols {
		for ti := range cols[ci].Tasks {
			t := &cols[ci].Tasks[ti]
			if statusutil.Drifted(*t, cols[ci]) {
				r.logger.Printf("reconcile: task %s status %q differs from column %q; using column name", t.ID, t.Status, cols[ci].Name)
				t.Status = cols[ci].Name
			}
		}
	}

	out.Columns = cols
	return out, nil
}

// The backend filter is trusted only as far as the foreign key matches.

func keepColumns(in []model.Column, boardID string) []model.Column {
	out := make([]model.Column, 0, len(in))
	for _, c := range in {
		if c.BoardID == boardID {
			c.Tasks = nil
			out = append(out, c)
		}
	}
	return out
}

func keepTasks(in []model.Task, columnID string) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		if t.ColumnID == columnID {
			t.Subtasks = nil
			out = append(out, t)
		}
	}
	return out
}

func keepSubtasks(in []model.Subtask, taskID string) []model.Subtask {
	out := make([]model.Subtask, 0, len(in))
	for _, s := range in {
		if s.TaskID == taskID {
			out = append(out, s)
		}
	}
	return out
}
