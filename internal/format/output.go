package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Texter is implemented by values with a human-readable text rendering.
type Texter interface {
	Text() string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText unwraps a {"data": ...} envelope and prints its Text() rendering. Values
// without one fall back to indented JSON.
func WriteText(w io.Writer, v any) error {
	if env, ok := v.(map[string]any); ok {
		if data, ok := env["data"]; ok {
			v = data
		}
	}
	switch x := v.(type) {
	case Texter:
		_, err := fmt.Fprintln(w, x.Text())
		return err
	case string:
		_, err := fmt.Fprintln(w, x)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, x.String())
		return err
	default:
		return WriteJSON(w, v, true)
	}
}
