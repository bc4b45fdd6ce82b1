package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/raymyers/rift/pkg/ast"
	"github.com/raymyers/rift/pkg/diag"
	"github.com/raymyers/rift/pkg/lexer"
	"github.com/raymyers/rift/pkg/parser"
)

const (
	historyFile = ".rift_history"
	promptMain  = "rift> "
	promptCont  = "  ... "
)

// lineReader is the part of *liner.State the REPL loop needs
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// lineEditor adds history persistence and cleanup to lineReader
type lineEditor interface {
	lineReader
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// openLineEditor takes over the terminal for the repl command
var openLineEditor = func() lineEditor {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return ln
}

func newReplCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse statements interactively and print their syntax trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, ".")
			if err != nil {
				fmt.Fprintf(errOut, "rift: %v\n", err)
				return err
			}
			logger := newLogger(errOut, verbose)

			ed := openLineEditor()
			defer ed.Close()

			if histPath, ok := historyPath(); ok {
				loadHistory(ed, histPath)
				defer saveHistory(ed, histPath, logger)
			} else {
				logger.Debug("no home directory, history disabled")
			}

			fmt.Fprintf(out, "rift %s - enter statements, :quit to exit\n", version)
			s := &replSession{
				opts:   parserOptions(cfg, logger),
				out:    out,
				errOut: errOut,
				diag:   diag.Options{Color: cfg.Output.Color, Context: cfg.Output.Context},
			}
			s.run(ed)
			return nil
		},
	}
}

// historyPath returns ~/.rift_history. ok is false when there is no home
// directory to keep it in.
func historyPath() (path string, ok bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

func loadHistory(ed lineEditor, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = ed.ReadHistory(f)
}

func saveHistory(ed lineEditor, path string, logger *slog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("cannot save history", "path", path, "err", err)
		return
	}
	defer f.Close()
	if _, err := ed.WriteHistory(f); err != nil {
		logger.Warn("cannot save history", "path", path, "err", err)
	}
}

type replSession struct {
	opts   parser.Options
	out    io.Writer
	errOut io.Writer
	diag   diag.Options
}

// run reads entries until end of input or :quit
func (s *replSession) run(lr lineReader) {
	for {
		src, ok := s.readEntry(lr)
		if !ok {
			fmt.Fprintln(s.out)
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return
			case ":help":
				fmt.Fprintln(s.out, "Enter Rift statements or a bare expression. :quit exits.")
			default:
				fmt.Fprintln(s.out, "unknown command. Type :quit to exit.")
			}
			continue
		}

		s.eval(src)
		lr.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readEntry collects lines until they form complete input. An empty
// continuation line submits whatever has been typed.
func (s *replSession) readEntry(lr lineReader) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !s.needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether src only fails because it ends too early
func (s *replSession) needsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	tokens := lexer.Tokenize(src)
	_, err := parser.Parse(tokens, s.opts)
	if err == nil || !parser.IsIncomplete(err) {
		return false
	}
	_, exprErr := parser.ParseExpression(tokens, s.opts)
	return exprErr != nil
}

// eval parses src and prints the result in prefix form. A bare expression
// without a terminator is accepted as well.
func (s *replSession) eval(src string) {
	tokens := lexer.Tokenize(src)

	p := parser.New(tokens, s.opts)
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		fmt.Fprint(s.out, ast.SexprProgram(prog))
		return
	}

	if expr, err := parser.ParseExpression(tokens, s.opts); err == nil {
		fmt.Fprintln(s.out, ast.Sexpr(expr))
		return
	}

	fmt.Fprint(s.out, ast.SexprProgram(prog))
	diag.NewRenderer(s.errOut, s.diag).RenderAll("", src, p.Errors())
}

var _ lineEditor = (*liner.State)(nil)
