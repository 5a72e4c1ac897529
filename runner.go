package lifeassist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/assistant"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// Runner handles the interactive chat loop using provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	// UserID selects whose profile personalizes the replies. May be empty.
	UserID string
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

const runnerHelp = `Commands:
  /recommend [category]  suggest things to do
  /remember <interest>   add an interest to your profile
  /profile               show your profile
  /help                  show this help
  exit, quit             leave`

// Run reads one message per line and answers it until EOF, "exit" or ctx
// is cancelled. Flow failures are reported and the loop goes on.
func (r *Runner) Run(ctx context.Context, app *App) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	writer := r.Output
	if writer == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(writer, "Ask me anything. Type /help for commands.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(writer, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)
		if errors.Is(err, io.EOF) && input == "" {
			return nil
		}

		switch {
		case input == "":
		case input == "exit" || input == "quit":
			fmt.Fprintln(writer, "Bye!")
			return nil
		case strings.HasPrefix(input, "/"):
			r.command(ctx, app, input)
		default:
			reply, cerr := app.Assistant().Chat(ctx, r.UserID, input)
			if cerr != nil {
				r.fail(cerr)
				break
			}
			r.print(reply.Response)
			for _, action := range reply.SuggestedActions {
				fmt.Fprintf(writer, "  - %s\n", action)
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func (r *Runner) command(ctx context.Context, app *App, input string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		fmt.Fprintln(r.Output, runnerHelp)
	case "recommend":
		recs, err := app.Assistant().Recommend(ctx, r.UserID, assistant.RecommendRequest{Category: arg})
		if err != nil {
			r.fail(err)
			return
		}
		var b strings.Builder
		for _, item := range recs.Items {
			fmt.Fprintf(&b, "- **%s**: %s\n", item.Title, item.Description)
		}
		if recs.Summary != "" {
			fmt.Fprintf(&b, "\n%s\n", recs.Summary)
		}
		r.print(b.String())
	case "remember":
		if r.UserID == "" || arg == "" {
			fmt.Fprintln(r.Output, "usage: /remember <interest> (requires a user)")
			return
		}
		_, err := app.Profiles().Update(ctx, r.UserID, func(p *domain.UserProfile) error {
			p.AddInterest(arg)
			return nil
		})
		if err != nil {
			r.fail(err)
			return
		}
		fmt.Fprintf(r.Output, "Noted: %s\n", arg)
	case "profile":
		if r.UserID == "" {
			fmt.Fprintln(r.Output, "no user selected")
			return
		}
		p, err := app.Profiles().LoadOrEmpty(ctx, r.UserID)
		if err != nil {
			r.fail(err)
			return
		}
		fmt.Fprintf(r.Output, "name: %s\ninterests: %s\nlocation: %s\n",
			p.Name, strings.Join(p.Interests, ", "), p.Location)
	default:
		fmt.Fprintf(r.Output, "unknown command /%s\n", name)
	}
}

func (r *Runner) print(markdown string) {
	output := markdown
	if r.Renderer != nil {
		if rendered, err := r.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}

func (r *Runner) fail(err error) {
	if kind := domain.KindOf(err); kind != "" {
		fmt.Fprintf(r.Output, "Error (%s): %v\n", kind, err)
		return
	}
	fmt.Fprintf(r.Output, "Error: %v\n", err)
}
