// Package statusutil holds the rules for comparing a task's status text with column names.
package statusutil

import (
	"strings"

	"kanban-cli/internal/model"
)

// Normalize trims s. Column lookup and drift checks compare normalized names.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Drifted reports whether a task's status no longer names the column it sits in.
func Drifted(t model.Task, col model.Column) bool {
	return Normalize(t.Status) != Normalize(col.Name)
}

// IsEndState reports whether a column name reads as a finished state. Cards in such
// columns are rendered de-emphasized; nothing else depends on it.
func IsEndState(columnName string) bool {
	switch strings.ToLower(Normalize(columnName)) {
	case "done", "complete", "completed", "finished", "closed", "shipped":
		return true
	default:
		return false
	}
}
