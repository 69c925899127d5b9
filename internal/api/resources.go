package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"kanban-cli/internal/model"
)

// Request payloads. Only mutable fields are sent; ids travel in the URL.
type boardPayload struct {
	Name string `json:"board_name"`
}

type columnPayload struct {
	Name    string `json:"column_name"`
	BoardID string `json:"board_id"`
}

type taskPayload struct {
	Name        string `json:"task_name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ColumnID    string `json:"column_id"`
}

type subtaskPayload struct {
	Name        string `json:"subtask_name"`
	IsCompleted bool   `json:"is_completed"`
	TaskID      string `json:"task_id"`
}

func filter(key, value string) url.Values {
	return url.Values{key: []string{strings.TrimSpace(value)}}
}

// Boards

func (c *Client) ListBoards(ctx context.Context) ([]model.Board, error) {
	var out []model.Board
	if err := c.do(ctx, http.MethodGet, resBoards, "", nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = out[i].Flat()
	}
	if out == nil {
		out = []model.Board{}
	}
	return out, nil
}

func (c *Client) CreateBoard(ctx context.Context, b model.Board) (model.Board, error) {
	var out model.Board
	err := c.do(ctx, http.MethodPost, resBoards, "", nil, boardPayload{Name: b.Name}, &out)
	return out, err
}

func (c *Client) UpdateBoard(ctx context.Context, id string, b model.Board) (model.Board, error) {
	var out model.Board
	err := c.do(ctx, http.MethodPut, resBoards, id, nil, boardPayload{Name: b.Name}, &out)
	return out, err
}

func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, resBoards, id, nil, nil, nil)
}

// Columns

func (c *Client) ListColumns(ctx context.Context, boardID string) ([]model.Column, error) {
	var out []model.Column
	if err := c.do(ctx, http.MethodGet, resColumns, "", filter("board_id", boardID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Column{}
	}
	return out, nil
}

func (c *Client) CreateColumn(ctx context.Context, col model.Column) (model.Column, error) {
	var out model.Column
	err := c.do(ctx, http.MethodPost, resColumns, "", nil, columnPayload{Name: col.Name, BoardID: col.BoardID}, &out)
	return out, err
}

func (c *Client) UpdateColumn(ctx context.Context, id string, col model.Column) (model.Column, error) {
	var out model.Column
	err := c.do(ctx, http.MethodPut, resColumns, id, nil, columnPayload{Name: col.Name, BoardID: col.BoardID}, &out)
	return out, err
}

func (c *Client) DeleteColumn(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, resColumns, id, nil, nil, nil)
}

// Tasks

func (c *Client) ListTasks(ctx context.Context, columnID string) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, resTasks, "", filter("column_id", columnID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, resTasks, "", nil, toTaskPayload(t), &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, t model.Task) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPut, resTasks, id, nil, toTaskPayload(t), &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, resTasks, id, nil, nil, nil)
}

func toTaskPayload(t model.Task) taskPayload {
	return taskPayload{Name: t.Name, Description: t.Description, Status: t.Status, ColumnID: t.ColumnID}
}

// Subtasks

func (c *Client) ListSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	var out []model.Subtask
	if err := c.do(ctx, http.MethodGet, resSubtasks, "", filter("task_id", taskID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Subtask{}
	}
	return out, nil
}

func (c *Client) CreateSubtask(ctx context.Context, s model.Subtask) (model.Subtask, error) {
	var out model.Subtask
	err := c.do(ctx, http.MethodPost, resSubtasks, "", nil, subtaskPayload{Name: s.Name, IsCompleted: s.IsCompleted, TaskID: s.TaskID}, &out)
	return out, err
}

func (c *Client) UpdateSubtask(ctx context.Context, id string, s model.Subtask) (model.Subtask, error) {
	var out model.Subtask
	err := c.do(ctx, http.MethodPut, resSubtasks, id, nil, subtaskPayload{Name: s.Name, IsCompleted: s.IsCompleted, TaskID: s.TaskID}, &out)
	return out, err
}

func (c *Client) DeleteSubtask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, resSubtasks, id, nil, nil, nil)
}
