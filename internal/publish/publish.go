// Package publish exports boards as markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"kanban-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
	Bytes   int      `json:"bytes"`
}

// WriteBoard renders b and writes it to path, creating parent directories.
func WriteBoard(b model.Board, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --out")
	}
	path = filepath.Clean(path)

	md := RenderBoardMarkdown(b)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}, Bytes: len(md)}, nil
}

// Slug turns a board name into a file-name friendly string ("Platform Launch" -> "platform-launch").
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if sb.Len() > 0 && !dash {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "board"
	}
	return out
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
