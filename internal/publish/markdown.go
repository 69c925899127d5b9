package publish

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"kanban-cli/internal/model"
)

var stripTags = bluemonday.StripTagsPolicy()

// plainDescription drops raw HTML (script and style bodies included) from a task
// description. Markdown syntax is kept as typed.
func plainDescription(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(s)))
}

// RenderBoardMarkdown renders a reconciled board as a markdown document: one section per
// column in board order, one subsection per task, subtasks as a checklist.
func RenderBoardMarkdown(b model.Board) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(b.Name))
	writeLn("")
	if strings.TrimSpace(b.ID) != "" {
		writeLn("- ID: " + b.ID)
	}
	tasks := 0
	for _, c := range b.Columns {
		tasks += len(c.Tasks)
	}
	writeLn(fmt.Sprintf("- Columns: %d", len(b.Columns)))
	writeLn(fmt.Sprintf("- Tasks: %d", tasks))

	for _, c := range b.Columns {
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d)", strings.TrimSpace(c.Name), len(c.Tasks)))
		if len(c.Tasks) == 0 {
			writeLn("")
			writeLn("_No tasks._")
			continue
		}
		for _, t := range c.Tasks {
			writeLn("")
			writeLn("### " + strings.TrimSpace(t.Name))
			writeLn("")
			writeLn("- ID: " + t.ID)
			writeLn("- Subtasks: " + t.SubtaskProgress())

			if desc := plainDescription(t.Description); desc != "" {
				writeLn("")
				writeLn(desc)
			}
			if len(t.Subtasks) > 0 {
				writeLn("")
				for _, s := range t.Subtasks {
					box := "[ ]"
					if s.IsCompleted {
						box = "[x]"
					}
					writeLn("- " + box + " " + strings.TrimSpace(s.Name))
				}
			}
		}
	}
	return buf.String()
}
