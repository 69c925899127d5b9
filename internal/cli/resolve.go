package cli

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"kanban-cli/internal/model"
)

// matchBoard resolves ref against the flat board list: exact id, then case-insensitive name,
// then the best fuzzy name match.
func matchBoard(boards []model.Board, ref string) (model.Board, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Board{}, false
	}
	for _, b := range boards {
		if b.ID == ref {
			return b, true
		}
	}
	for _, b := range boards {
		if strings.EqualFold(strings.TrimSpace(b.Name), ref) {
			return b, true
		}
	}
	names := make([]string, len(boards))
	for i, b := range boards {
		names[i] = b.Name
	}
	if matches := fuzzy.Find(ref, names); len(matches) > 0 {
		return boards[matches[0].Index], true
	}
	return model.Board{}, false
}

// resolveBoardID maps a --board value (or the remembered last board when empty) to an id.
func (s *session) resolveBoardID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		last, err := s.prefs.LastBoardID(ctx)
		if err != nil {
			return "", err
		}
		if last == "" {
			return "", errNoBoard
		}
		ref = last
	}
	boards, err := s.client.ListBoards(ctx)
	if err != nil {
		return "", err
	}
	b, ok := matchBoard(boards, ref)
	if !ok {
		return "", errNotFound("board", ref)
	}
	return b.ID, nil
}

// loadBoard selects ref and returns its reconciled aggregate. Partial trees are not returned
// to commands: a failed reconcile is an error here.
func (s *session) loadBoard(ctx context.Context, ref string) (*model.Board, error) {
	id, err := s.resolveBoardID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.sel.Load(ctx, id); err != nil {
		return nil, err
	}
	st := s.sel.State()
	if st.Selected == nil || st.SelectedBoardID != id {
		return nil, errNotFound("board", id)
	}
	return st.Selected, nil
}

// refreshBoard re-reconciles the selected board after a mutation.
func (s *session) refreshBoard(ctx context.Context) (*model.Board, error) {
	if err := s.sel.Refresh(ctx); err != nil {
		return nil, err
	}
	st := s.sel.State()
	if st.Selected == nil {
		return nil, errNoBoard
	}
	return st.Selected, nil
}

// findTask locates taskID on ref's board, or when ref is empty on the last board and then on
// every board in list order.
func (s *session) findTask(ctx context.Context, ref, taskID string) (*model.Board, *model.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if ref != "" {
		b, err := s.loadBoard(ctx, ref)
		if err != nil {
			return nil, nil, err
		}
		if t, _, ok := b.FindTask(taskID); ok {
			return b, t, nil
		}
		return nil, nil, errNotFound("task", taskID)
	}
	return s.scanBoards(ctx, func(b *model.Board) (*model.Task, bool) {
		t, _, ok := b.FindTask(taskID)
		return t, ok
	}, "task", taskID)
}

func (s *session) findSubtask(ctx context.Context, ref, subtaskID string) (*model.Board, *model.Subtask, error) {
	subtaskID = strings.TrimSpace(subtaskID)
	var found *model.Subtask
	probe := func(b *model.Board) (*model.Task, bool) {
		sub, parent, ok := b.FindSubtask(subtaskID)
		if ok {
			found = sub
		}
		return parent, ok
	}
	if ref != "" {
		b, err := s.loadBoard(ctx, ref)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := probe(b); ok {
			return b, found, nil
		}
		return nil, nil, errNotFound("subtask", subtaskID)
	}
	b, _, err := s.scanBoards(ctx, probe, "subtask", subtaskID)
	if err != nil {
		return nil, nil, err
	}
	return b, found, nil
}

func (s *session) scanBoards(ctx context.Context, probe func(*model.Board) (*model.Task, bool), kind, id string) (*model.Board, *model.Task, error) {
	last, err := s.prefs.LastBoardID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := s.sel.Load(ctx, last); err != nil {
		return nil, nil, err
	}
	st := s.sel.State()
	order := make([]string, 0, len(st.Boards))
	if st.SelectedBoardID != "" {
		order = append(order, st.SelectedBoardID)
	}
	for _, b := range st.Boards {
		if b.ID != st.SelectedBoardID {
			order = append(order, b.ID)
		}
	}
	for _, bid := range order {
		if bid != s.sel.State().SelectedBoardID {
			if err := s.sel.Select(ctx, bid); err != nil {
				return nil, nil, err
			}
		}
		b := s.sel.State().Selected
		if b == nil {
			continue
		}
		if t, ok := probe(b); ok {
			return b, t, nil
		}
	}
	return nil, nil, errNotFound(kind, id)
}
