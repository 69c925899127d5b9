// Package selection owns which board is selected and its reconciled aggregate.
//
// Every transition takes a generation token when it starts. Network work happens without the
// lock; results are committed only if no later transition has started in the meantime.
// Superseded results are dropped and the transition returns ErrSuperseded.
package selection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"kanban-cli/internal/model"
)

var ErrSuperseded = errors.New("selection: superseded by a newer transition")

type Source interface {
	ListBoards(ctx context.Context) ([]model.Board, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, board model.Board) (model.Board, error)
}

type State struct {
	SelectedBoardID string
	Boards          []model.Board
	// Selected is nil when nothing is selected; otherwise the last committed aggregate for
	// SelectedBoardID.
	Selected   *model.Board
	Generation uint64
}

type Manager struct {
	src    Source
	rec    Reconciler
	logger *log.Logger

	mu     sync.Mutex
	gen    uint64
	target string
	state  State
}

func NewManager(src Source, rec Reconciler, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{src: src, rec: rec, logger: logger, state: State{Boards: []model.Board{}}}
}

// State returns a snapshot. Board slices are copied; the Selected aggregate is shared and
// must be treated as read-only.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Boards = append([]model.Board(nil), m.state.Boards...)
	return s
}

// Load fetches the board list and selects the current target, else preferredID, else the
// first board.
func (m *Manager) Load(ctx context.Context, preferredID string) error {
	tok, target, _ := m.begin(nil)
	if target == "" {
		target = preferredID
	}
	return m.reload(ctx, tok, target, "", nil)
}

// Refresh re-lists boards and re-reconciles the targeted board.
func (m *Manager) Refresh(ctx context.Context) error {
	tok, target, _ := m.begin(nil)
	return m.reload(ctx, tok, target, "", nil)
}

// Select targets board id. Ids missing from the current list clear the selection.
func (m *Manager) Select(ctx context.Context, id string) error {
	tok, _, boards := m.begin(&id)
	board, ok := findBoard(boards, id)
	if !ok {
		return m.commit(tok, func(s *State) {
			s.SelectedBoardID = ""
			s.Selected = nil
		})
	}
	agg, rerr := m.reconcile(ctx, board)
	if err := m.commit(tok, func(s *State) {
		s.SelectedBoardID = board.ID
		s.Selected = agg
	}); err != nil {
		return err
	}
	return rerr
}

// RemoveBoard is called after deletedID was removed on the backend. It re-lists boards
// (falling back to the previous list on failure) and selects the first remaining one.
func (m *Manager) RemoveBoard(ctx context.Context, deletedID string) error {
	empty := ""
	tok, _, prev := m.begin(&empty)
	return m.reload(ctx, tok, "", deletedID, prev)
}

// Clear drops the selection and invalidates in-flight transitions.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.target = ""
	m.state.SelectedBoardID = ""
	m.state.Selected = nil
	m.state.Generation = m.gen
}

// begin starts a transition. When target is non-nil it becomes the new intent.
func (m *Manager) begin(target *string) (uint64, string, []model.Board) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if target != nil {
		m.target = *target
	}
	return m.gen, m.target, append([]model.Board(nil), m.state.Boards...)
}

func (m *Manager) commit(tok uint64, apply func(*State)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tok != m.gen {
		return ErrSuperseded
	}
	apply(&m.state)
	m.target = m.state.SelectedBoardID
	m.state.Generation = tok
	return nil
}

// reload lists boards, drops excludeID, and selects target or the first board. fallback is
// used as the list when fetching fails and it is non-nil.
func (m *Manager) reload(ctx context.Context, tok uint64, target, excludeID string, fallback []model.Board) error {
	boards, listErr := m.src.ListBoards(ctx)
	if listErr != nil {
		m.logger.Printf("selection: list boards: %v", listErr)
		listErr = fmt.Errorf("list boards: %w", listErr)
		if fallback == nil {
			if err := m.commit(tok, func(s *State) {
				s.Boards = []model.Board{}
				s.SelectedBoardID = ""
				s.Selected = nil
			}); err != nil {
				return err
			}
			return listErr
		}
		boards = fallback
	}
	boards = without(boards, excludeID)

	board, ok := findBoard(boards, target)
	if !ok && len(boards) > 0 {
		board, ok = boards[0], true
	}
	if !ok {
		if err := m.commit(tok, func(s *State) {
			s.Boards = boards
			s.SelectedBoardID = ""
			s.Selected = nil
		}); err != nil {
			return err
		}
		return listErr
	}

	agg, rerr := m.reconcile(ctx, board)
	if err := m.commit(tok, func(s *State) {
		s.Boards = boards
		s.SelectedBoardID = board.ID
		s.Selected = agg
	}); err != nil {
		return err
	}
	return errors.Join(listErr, rerr)
}

// reconcile never returns a nil aggregate; on failure the board is shown with no columns.
func (m *Manager) reconcile(ctx context.Context, board model.Board) (*model.Board, error) {
	agg, err := m.rec.Reconcile(ctx, board)
	if err != nil {
		m.logger.Printf("selection: reconcile board %s: %v", board.ID, err)
		flat := board.Flat()
		return &flat, fmt.Errorf("load board %s: %w", board.ID, err)
	}
	return &agg, nil
}

func findBoard(boards []model.Board, id string) (model.Board, bool) {
	if id == "" {
		return model.Board{}, false
	}
	for _, b := range boards {
		if b.ID == id {
			return b, true
		}
	}
	return model.Board{}, false
}

func without(boards []model.Board, id string) []model.Board {
	out := make([]model.Board, 0, len(boards))
	for _, b := range boards {
		if id != "" && b.ID == id {
			continue
		}
		out = append(out, b)
	}
	return out
}
