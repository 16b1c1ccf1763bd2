package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tracetm ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                      _____ __  __ ", "#818cf8"},
		{"| |_ _ __ __ _  ___ ___|_   _|  \\/  |", "#a78bfa"},
		{"| __| '__/ _` |/ __/ _ \\ | | | |\\/| |", "#c084fc"},
		{"| |_| | | (_| | (_|  __/ | | | |  | |", "#e879f9"},
		{" \\__|_|  \\__,_|\\___\\___| |_| |_|  |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// VerdictLabel colours a verdict kind for terminal output.
func VerdictLabel(kind string) string {
	p := termenv.ColorProfile()
	s := termenv.String(kind).Bold()
	switch kind {
	case "accepted":
		return s.Foreground(p.Color("#22c55e")).String()
	case "rejected":
		return s.Foreground(p.Color("#ef4444")).String()
	case "error":
		return s.Foreground(p.Color("#f97316")).String()
	default:
		return s.Foreground(p.Color("#eab308")).String()
	}
}
