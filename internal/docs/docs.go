// Package docs embeds the help topics printed by `kanban docs` and shown in the TUI help modal.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic describes one embedded page. Title is the page's first heading and Summary its
// first paragraph line.
type Topic struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// List returns every topic sorted by name.
func List() []Topic {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []Topic{}
	}
	out := make([]Topic, 0, len(entries))
	for _, p := range entries {
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		b, err := contentFS.ReadFile(p)
		if name == "" || err != nil {
			continue
		}
		title, summary := headline(string(b))
		if title == "" {
			title = name
		}
		out = append(out, Topic{Name: name, Title: title, Summary: summary})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func Topics() []string {
	list := List()
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}
	return names
}

// Get returns the markdown for a topic name or title ("tui" or "keys"), case-insensitive.
func Get(topic string) (string, bool) {
	t, ok := Find(topic)
	if !ok {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", t.Name+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func Find(topic string) (Topic, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return Topic{}, false
	}
	for _, t := range List() {
		if t.Name == topic || strings.ToLower(t.Title) == topic {
			return t, true
		}
	}
	return Topic{}, false
}

func headline(md string) (title, summary string) {
	for _, ln := range strings.Split(md, "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case title == "" && strings.HasPrefix(ln, "# "):
			title = strings.TrimSpace(strings.TrimPrefix(ln, "# "))
		case title == "":
			return "", ""
		case strings.HasPrefix(ln, "#"), strings.HasPrefix(ln, "```"):
			return title, ""
		default:
			return title, ln
		}
	}
	return title, ""
}
