package forms

import "kanban-cli/internal/model"

// Plan is the set of child writes needed to turn the original rows into the submitted ones.
// Update lists every submitted row that already exists, changed or not. Create keeps
// submitted order. Delete lists original ids in original order.
type Plan[T any] struct {
	Update []T
	Create []T
	Delete []string
}

func (p Plan[T]) Empty() bool {
	return len(p.Update) == 0 && len(p.Create) == 0 && len(p.Delete) == 0
}

func DiffColumns(original []model.Column, submitted []ColumnField) Plan[ColumnField] {
	ids := make([]string, 0, len(original))
	for _, c := range original {
		ids = append(ids, c.ID)
	}
	return diff(ids, submitted, func(f ColumnField) string { return f.ID })
}

func DiffSubtasks(original []model.Subtask, submitted []SubtaskField) Plan[SubtaskField] {
	ids := make([]string, 0, len(original))
	for _, s := range original {
		ids = append(ids, s.ID)
	}
	return diff(ids, submitted, func(f SubtaskField) string { return f.ID })
}

func diff[T any](originalIDs []string, submitted []T, idOf func(T) string) Plan[T] {
	known := make(map[string]bool, len(originalIDs))
	for _, id := range originalIDs {
		if id != "" {
			known[id] = false
		}
	}

	var p Plan[T]
	for _, row := range submitted {
		id := idOf(row)
		if _, ok := known[id]; ok && id != "" {
			// A duplicated id in the submission is updated once; later copies become creates.
			if !known[id] {
				known[id] = true
				p.Update = append(p.Update, row)
				continue
			}
		}
		p.Create = append(p.Create, row)
	}
	for _, id := range originalIDs {
		if id == "" {
			continue
		}
		if kept := known[id]; !kept {
			p.Delete = append(p.Delete, id)
			known[id] = true
		}
	}
	return p
}
