package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/raymyers/rift/pkg/ast"
	"github.com/raymyers/rift/pkg/config"
	"github.com/raymyers/rift/pkg/diag"
	"github.com/raymyers/rift/pkg/lexer"
	"github.com/raymyers/rift/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping intermediate representations
var (
	dTokens bool
	dParse  bool
	dSexpr  bool
)

// Parser and output options
var (
	configPath string
	maxDepth   int
	maxErrors  int
	colorMode  string
	watchMode  bool
	verbose    bool
)

// ErrParseFailed indicates the input had syntax errors; they have already
// been reported on the error writer.
var ErrParseFailed = errors.New("parsing failed")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Normalize single-dash debug flags to double-dash for pflag compatibility
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists all debug flags that should accept single-dash style
var debugFlagNames = []string{"dtokens", "dparse", "dsexpr"}

// normalizeFlags converts single-dash debug flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rift [file]",
		Short: "rift parses Rift programs and reports syntax errors",
		Long: `rift is the front end of the Rift compiler. It scans and parses a
source file, reports every syntax error it can recover from, and can dump
the token stream or the resulting syntax tree.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			cfg, err := loadConfig(cmd, filepath.Dir(filename))
			if err != nil {
				fmt.Fprintf(errOut, "rift: %v\n", err)
				return err
			}
			logger := newLogger(errOut, verbose)

			if watchMode {
				return watchFile(cmd.Context(), filename, func() error {
					return doParse(filename, cfg, logger, out, errOut)
				}, errOut, logger)
			}
			return doParse(filename, cfg, logger, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Add debug flags
	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the token stream")
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump after parsing, in source form")
	rootCmd.Flags().BoolVarP(&dSexpr, "dsexpr", "", false, "Dump after parsing, in prefix form")

	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-parse whenever the file changes")

	// Shared with the repl subcommand
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: discover rift.toml/rift.yaml)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Maximum expression nesting depth (0 = default, -1 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", 0, "Stop after this many errors (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", config.ColorAuto, "Color diagnostics: auto, always or never")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log parser activity to stderr")

	rootCmd.AddCommand(newReplCmd(out, errOut))

	return rootCmd
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then RIFT_* environment variables, then explicit flags.
func loadConfig(cmd *cobra.Command, dir string) (config.Config, error) {
	cfg := config.Default()

	path := configPath
	if path == "" {
		path, _ = config.Discover(dir)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.Parser.MaxDepth = maxDepth
	}
	if flags.Changed("max-errors") {
		cfg.Parser.MaxErrors = maxErrors
	}
	if flags.Changed("color") {
		cfg.Output.Color = colorMode
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parserOptions(cfg config.Config, logger *slog.Logger) parser.Options {
	return parser.Options{
		MaxDepth:  cfg.Parser.MaxDepth,
		MaxErrors: cfg.Parser.MaxErrors,
		Logger:    logger,
	}
}

// doParse parses the file, writes any requested dumps and reports errors
func doParse(filename string, cfg config.Config, logger *slog.Logger, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "rift: error reading %s: %v\n", filename, err)
		return err
	}
	src := string(content)

	tokens := lexer.Tokenize(src)
	logger.Debug("scanned", "file", filename, "tokens", len(tokens))

	if dTokens {
		for _, tok := range tokens {
			fmt.Fprintln(out, tok)
		}
	}

	p := parser.New(tokens, parserOptions(cfg, logger))
	program := p.ParseProgram()

	if dSexpr {
		fmt.Fprint(out, ast.SexprProgram(program))
	}

	if errs := p.Errors(); len(errs) > 0 {
		r := diag.NewRenderer(errOut, diag.Options{Color: cfg.Output.Color, Context: cfg.Output.Context})
		r.RenderAll(filename, src, errs)
		return fmt.Errorf("%w with %s", ErrParseFailed, diag.Summary(len(errs)))
	}

	if dParse {
		return dumpParsed(filename, program, out, errOut)
	}

	if !dTokens && !dSexpr {
		fmt.Fprintf(out, "rift: %s: %d statements\n", filename, len(program.Stmts))
	}
	return nil
}

// dumpParsed writes the program in source form to a .parsed.rift file and
// to out
func dumpParsed(filename string, program *ast.Program, out, errOut io.Writer) error {
	outputFilename := parsedOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "rift: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := ast.NewPrinter(outFile)
	printer.PrintProgram(program)

	// Also print to stdout for convenience
	printer = ast.NewPrinter(out)
	printer.PrintProgram(program)

	return nil
}

// parsedOutputFilename returns the output filename for -dparse
// input.rift -> input.parsed.rift
func parsedOutputFilename(filename string) string {
	ext := ".rift"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.rift"
	}
	return filename + ".parsed.rift"
}
