package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Teal to amber, one step per line
	lines := []struct{ text, color string }{
		{`  _     _  __        _            _     _   `, "#2dd4bf"},
		{` | |   (_)/ _| ___  / \   ___ ___(_)___| |_ `, "#34d399"},
		{` | |   | | |_ / _ \/ _ \ / __/ __| / __| __|`, "#a3e635"},
		{` | |___| |  _|  __/ ___ \\__ \__ \ \__ \ |_ `, "#facc15"},
		{` |_____|_|_|  \___/_/   \_\___/___/_|___/\__|`, "#fbbf24"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
