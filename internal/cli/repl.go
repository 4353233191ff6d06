package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/presentation/tui"
	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const prompt = "tabula> "

// LineReader yields one line of user input per call.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

type scanReader struct {
	sc *bufio.Scanner
}

func (s *scanReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) Close() error { return nil }

func newScanner(r io.Reader) *bufio.Scanner {
	return bufio.NewScanner(r)
}

// NewLineReader picks readline for a terminal and a plain line scanner for
// piped input. The scanner stops at the next line boundary once ctx is done.
func NewLineReader(ctx context.Context, in *os.File) (LineReader, error) {
	if term.IsTerminal(int(in.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			AutoComplete:    newCompleter(),
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize REPL: %w", err)
		}
		return rl, nil
	}
	return &scanReader{sc: newScanner(NewInterruptibleReader(in, ctx.Done()))}, nil
}

func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("set"),
		readline.PcItem("show"),
		readline.PcItem("diff"),
		readline.PcItem("columns"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// REPL edits the grid one command at a time.
type REPL struct {
	editor *tabula.Editor
	out    io.Writer
	errOut io.Writer
	format string
	render func(string) (string, error)
}

// NewREPL creates a REPL printing grids in format. render post-processes
// markdown output and may be nil.
func NewREPL(ed *tabula.Editor, out, errOut io.Writer, format string, render func(string) (string, error)) *REPL {
	return &REPL{
		editor: ed,
		out:    out,
		errOut: errOut,
		format: format,
		render: render,
	}
}

// Run reads commands until quit, end of input or cancellation.
func (r *REPL) Run(ctx context.Context, lr LineReader) error {
	defer func() { _ = lr.Close() }()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := lr.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if isInterrupted(err) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := r.Exec(line); quit {
			return nil
		}
	}
}

// Exec runs a single command line. It reports whether the REPL should stop.
func (r *REPL) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	command, rest := nextArg(line)
	switch strings.ToLower(command) {
	case "quit", "exit":
		return true
	case "help":
		printHelp(r.out)
	case "show":
		r.report(tui.Render(r.out, tui.SheetOf(r.editor.Table()), r.format, r.render))
	case "diff":
		r.report(tui.RenderChanges(r.out, r.editor.Changes(), r.format))
	case "reset":
		r.editor.Reset()
		printSystemMessage(r.out, "Dataset restored.")
	case "columns":
		r.columns()
	case "set":
		r.set(rest)
	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type help for commands)\n", command)
	}
	return false
}

func (r *REPL) set(args string) {
	rowArg, args := nextArg(args)
	target, raw := nextArg(args)
	if rowArg == "" || target == "" {
		_, _ = fmt.Fprintln(r.errOut, "Usage: set <row> <field>[.<sub-field>] <value>")
		return
	}

	row, err := strconv.Atoi(rowArg)
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "Error: invalid row %q\n", rowArg)
		return
	}

	field, sub, _ := strings.Cut(target, ".")
	res, err := r.editor.Table().EditResult(row, field, sub, raw)
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return
	}
	if res.Dropped {
		tui.Notice(r.errOut, "Edit dropped: %q is not a valid value for %s.", raw, target)
		return
	}
	if len(res.Changes) == 0 {
		printSystemMessage(r.out, "No change: %s already holds %q.", target, raw)
		return
	}
	r.report(tui.RenderChanges(r.out, res.Changes, r.format))
}

func (r *REPL) columns() {
	for _, col := range r.editor.Table().Columns() {
		_, _ = fmt.Fprintf(r.out, "%-14s %-16s %-10s %s\n", col.Field, col.Title, col.Type.Name(), col.Input)
	}
}

func (r *REPL) report(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
	}
}

// nextArg splits off the first whitespace-separated word of s.
func nextArg(s string) (string, string) {
	s = strings.TrimSpace(s)
	word, rest, _ := strings.Cut(s, " ")
	return word, strings.TrimSpace(rest)
}

func printHelp(w io.Writer) {
	help := `
Commands:
  show                               Print the grid
  set <row> <field> <value>          Edit a cell (rows start at 0)
  set <row> <field>.<sub> <value>    Edit one part of a composite cell
  columns                            List the columns and their types
  diff                               List cells changed since start
  reset                              Discard every edit
  help                               Show this help message
  quit / exit                        Leave the editor
`
	_, _ = fmt.Fprintln(w, help)
}
