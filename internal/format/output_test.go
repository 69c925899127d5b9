package format

import (
	"bytes"
	"strings"
	"testing"
)

type texty struct{ s string }

func (t texty) Text() string { return "text:" + t.s }

func TestWriteFormats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}}, "", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := buf.String(); got != "{\"data\":[1,2]}\n" {
		t.Fatalf("unexpected json output: %q", got)
	}

	buf.Reset()
	if err := Write(&buf, map[string]any{"data": texty{"x"}}, "text", false); err != nil {
		t.Fatalf("text: %v", err)
	}
	if got := buf.String(); got != "text:x\n" {
		t.Fatalf("unexpected text output: %q", got)
	}

	buf.Reset()
	if err := Write(&buf, map[string]any{"data": map[string]any{"k": 1}}, "text", false); err != nil {
		t.Fatalf("text fallback: %v", err)
	}
	if !strings.Contains(buf.String(), "\"k\": 1") {
		t.Fatalf("expected indented json fallback, got %q", buf.String())
	}

	if err := Write(&buf, nil, "edn", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
