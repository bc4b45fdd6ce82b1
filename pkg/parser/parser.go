// Package parser implements a recursive descent parser for Rift.
//
// Grammar, lowest precedence first:
//
//	program    -> statement* EOF
//	statement  -> "print" expression ";" | expression ";"
//	expression -> equality
//	equality   -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       -> factor ( ( "-" | "+" ) factor )*
//	factor     -> unary ( ( "/" | "*" ) unary )*
//	unary      -> ( "!" | "-" ) unary | primary
//	primary    -> NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/raymyers/rift/pkg/ast"
	"github.com/raymyers/rift/pkg/lexer"
	"github.com/raymyers/rift/pkg/reader"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is zero
const DefaultMaxDepth = 256

// Options configures parser behavior
type Options struct {
	// MaxDepth limits expression nesting. Zero means DefaultMaxDepth,
	// a negative value disables the limit.
	MaxDepth int
	// MaxErrors stops ParseProgram after this many diagnostics. Zero means
	// no limit.
	MaxErrors int
	Logger    *slog.Logger
}

// Parser parses a terminated token sequence into a Rift AST. A Parser is
// single-use.
type Parser struct {
	cur    *reader.Cursor[lexer.Token]
	opts   Options
	depth  int
	errors []*ParseError
	logger *slog.Logger
}

// New creates a new Parser over tokens. The slice is read, never modified,
// and should end with a TokenEOF.
func New(tokens []lexer.Token, opts Options) *Parser {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		cur:    reader.New(tokens, lexer.Token.IsEOF),
		opts:   opts,
		logger: logger.With("component", "parser"),
	}
}

// Parse parses a whole program. The returned program holds every statement
// that parsed; err joins all diagnostics, or is nil.
func Parse(tokens []lexer.Token, opts Options) (*ast.Program, error) {
	p := New(tokens, opts)
	prog := p.ParseProgram()
	return prog, p.Err()
}

// ParseExpression parses tokens as a single expression that must span the
// whole input.
func ParseExpression(tokens []lexer.Token, opts Options) (ast.Expr, error) {
	p := New(tokens, opts)
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.cur.AtEnd() {
		return nil, newParseError(p.cur.Peek(), "expected end of input")
	}
	return expr, nil
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// Err returns all parsing errors joined, or nil if there were none
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	errs := make([]error, len(p.errors))
	for i, e := range p.errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// ParseProgram parses statements until end of input. A statement that fails
// is recorded in Errors and skipped; parsing resumes at the next statement
// boundary.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.cur.AtEnd() {
		stmt, err := p.statement()
		if err != nil {
			p.addError(err)
			if p.opts.MaxErrors > 0 && len(p.errors) >= p.opts.MaxErrors {
				p.logger.Debug("error limit reached", "errors", len(p.errors))
				break
			}
			p.synchronize()
			continue
		}
		pos := stmt.Position()
		p.logger.Debug("statement", "line", pos.Line, "col", pos.Column)
		prog.Append(stmt)
	}

	p.logger.Debug("parsed program", "statements", len(prog.Stmts), "errors", len(p.errors))
	return prog
}

func (p *Parser) addError(err error) {
	var perr *ParseError
	if !errors.As(err, &perr) {
		perr = newParseError(p.cur.Peek(), err.Error())
	}
	p.errors = append(p.errors, perr)
	p.logger.Debug("parse error", "line", perr.Line, "col", perr.Column, "msg", perr.Msg)
}

// statementStarts are the keywords that begin a new statement
var statementStarts = []lexer.TokenType{
	lexer.TokenClass,
	lexer.TokenFun,
	lexer.TokenVar,
	lexer.TokenFor,
	lexer.TokenIf,
	lexer.TokenWhile,
	lexer.TokenPrint,
	lexer.TokenReturn,
}

// synchronize discards tokens until a probable statement boundary: just past
// a ';', or before a statement keyword. It always consumes the token the
// error was raised on unless that token is EOF.
func (p *Parser) synchronize() {
	start := p.cur.Pos()
	defer func() {
		p.logger.Debug("synchronized", "skipped", p.cur.Pos()-start, "at", p.cur.Peek().String())
	}()

	if _, err := p.cur.Advance(); err != nil {
		return
	}
	for !p.cur.AtEnd() {
		if p.cur.Previous().Type == lexer.TokenSemicolon {
			return
		}
		if p.cur.Check(is(statementStarts...)) {
			return
		}
		if _, err := p.cur.Advance(); err != nil {
			return
		}
	}
}

// is returns a predicate matching tokens of any of the given types
func is(types ...lexer.TokenType) func(lexer.Token) bool {
	return func(tok lexer.Token) bool {
		for _, t := range types {
			if tok.Type == t {
				return true
			}
		}
		return false
	}
}

// consume requires the current token to be of type t
func (p *Parser) consume(t lexer.TokenType, msg string) (lexer.Token, error) {
	if tok, ok := p.cur.Match(is(t)); ok {
		return tok, nil
	}
	return lexer.Token{}, newParseError(p.cur.Peek(), msg)
}

// enter records one level of expression nesting, failing past MaxDepth
func (p *Parser) enter() error {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return newParseError(p.cur.Peek(), "expression nested too deeply")
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func posOf(tok lexer.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Column: tok.Column}
}
