package tui

import (
	"kanban-cli/internal/selection"
)

type pane int

const (
	paneSidebar pane = iota
	paneBoard
)

type modalKind int

const (
	modalNone modalKind = iota
	modalBoardForm
	modalTaskForm
	modalTaskDetail
	modalStatusPicker
	modalConfirmDeleteBoard
	modalConfirmDeleteTask
	modalAlert
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// stateMsg delivers the selection snapshot after a load, select or refresh.
type stateMsg struct {
	op    string
	state selection.State
	err   error
}

// mutationMsg reports a finished write and the snapshot after its follow-up transition.
type mutationMsg struct {
	op    string
	state selection.State
	err   error
	// alert, when set, is shown in a blocking modal if err != nil.
	alert string
}

type prefsSavedMsg struct {
	key string
	err error
}

type flashMsg struct{ text string }

const (
	alertDeleteBoard = "Failed to delete the board. Please try again."
	alertDeleteTask  = "Failed to delete the task. Please try again."
)
