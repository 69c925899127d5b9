package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "cli,config,tui" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestListTitlesAndSummaries(t *testing.T) {
	t.Parallel()

	byName := map[string]Topic{}
	for _, tp := range List() {
		byName[tp.Name] = tp
	}
	if got := byName["tui"]; got.Title != "Keys" || !strings.HasPrefix(got.Summary, "Keys for the board list") {
		t.Fatalf("unexpected tui topic: %#v", got)
	}
	if got := byName["config"]; got.Title != "Configuration" || got.Summary == "" {
		t.Fatalf("unexpected config topic: %#v", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	md, ok := Get(" TUI ")
	if !ok || !strings.HasPrefix(md, "# Keys") {
		t.Fatalf("expected tui topic, got ok=%v md=%q", ok, md)
	}
	if byTitle, ok := Get("keys"); !ok || byTitle != md {
		t.Fatalf("expected lookup by title to return the tui topic")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected empty topic to be missing")
	}
}

func TestHeadline(t *testing.T) {
	t.Parallel()

	cases := []struct {
		md, title, summary string
	}{
		{"# A\n\nfirst line\nsecond", "A", "first line"},
		{"# A\n\n## B\n\ntext", "A", ""},
		{"no heading", "", ""},
	}
	for _, tc := range cases {
		title, summary := headline(tc.md)
		if title != tc.title || summary != tc.summary {
			t.Fatalf("headline(%q): expected %q/%q, got %q/%q", tc.md, tc.title, tc.summary, title, summary)
		}
	}
}
