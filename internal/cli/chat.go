package cli

import (
	"context"
	"errors"
	"io"
	"os"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/presentation/tui"
)

// ChatOptions configures RunChat.
type ChatOptions struct {
	UserID   string
	Headless bool
	Input    io.Reader
	Output   *os.File
	Version  string
}

// RunChat runs the interactive chat loop. Markdown is rendered only when
// the output is a terminal and the session is not headless.
func RunChat(ctx context.Context, app *lifeassist.App, opts ChatOptions) error {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	r := &lifeassist.Runner{
		Input:    in,
		Output:   out,
		Headless: opts.Headless,
		UserID:   opts.UserID,
	}
	if !opts.Headless {
		tui.PrintBanner(out, opts.Version)
		r.Renderer = lifeassist.ContentRenderer(tui.ForOutput(out))
	}

	err := r.Run(ctx, app)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
