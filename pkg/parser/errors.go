package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/rift/pkg/lexer"
	"github.com/raymyers/rift/pkg/reader"
)

// ErrSyntax is the root of every grammar violation. It wraps reader.ErrRead,
// so a parse error is also a read error.
var ErrSyntax = fmt.Errorf("syntax error: %w", reader.ErrRead)

// ParseError is a grammar violation at a source position
type ParseError struct {
	Msg    string
	Line   int
	Column int
	Lexeme string // lexeme of the offending token, empty at end of input
	AtEnd  bool   // the offending token was end-of-input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s, got %s", e.Line, e.Column, e.Msg, e.Near())
}

// Near describes the offending token: its quoted lexeme, or end of input
func (e *ParseError) Near() string {
	if e.AtEnd {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", e.Lexeme)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

func newParseError(tok lexer.Token, msg string) *ParseError {
	return &ParseError{
		Msg:    msg,
		Line:   tok.Line,
		Column: tok.Column,
		Lexeme: tok.Lexeme,
		AtEnd:  tok.Type == lexer.TokenEOF,
	}
}

// IsIncomplete reports whether err consists only of parse errors raised at
// end of input, i.e. the source could still become valid if more were typed.
func IsIncomplete(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) == 0 {
			return false
		}
		for _, e := range errs {
			if !IsIncomplete(e) {
				return false
			}
		}
		return true
	}
	var perr *ParseError
	return errors.As(err, &perr) && perr.AtEnd
}
