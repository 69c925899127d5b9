package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = func(s string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard: no copy utility found (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.WriteAll(s)
}

func copyToClipboard(s string) error {
	return writeClipboard(strings.ReplaceAll(s, "\r\n", "\n"))
}
