package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns Markdown replies into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a Renderer backed by glamour, wrapped to the terminal
// width when stdout is a terminal.
func NewRenderer() Renderer {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 20 {
		opts = append(opts, glamour.WithWordWrap(width-4))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer passes text through, trimmed.
func PlainRenderer(markdown string) (string, error) {
	return strings.TrimSpace(markdown) + "\n", nil
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ForOutput picks the glamour renderer for terminals and the plain one for
// pipes and files.
func ForOutput(f *os.File) Renderer {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return NewRenderer()
	}
	return PlainRenderer
}
