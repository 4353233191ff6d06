package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tabula ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _____     _           _       ", "#34d399"},
		{"|_   _|_ _| |__  _   _| | __ _ ", "#2dd4bf"},
		{"  | |/ _` | '_ \\| | | | |/ _` |", "#22d3ee"},
		{"  | | (_| | |_) | |_| | | (_| |", "#38bdf8"},
		{"  |_|\\__,_|_.__/ \\__,_|_|\\__,_|", "#60a5fa"},
	}

	_, _ = fmt.Fprintln(w)
	for _, l := range lines {
		_, _ = fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	_, _ = fmt.Fprintln(w)
}

// Notice renders a dimmed informational line, such as a dropped edit.
func Notice(w io.Writer, format string, args ...any) {
	out := termenv.NewOutput(w)
	_, _ = fmt.Fprintln(w, out.String(fmt.Sprintf(format, args...)).Foreground(out.Color("#fbbf24")))
}
