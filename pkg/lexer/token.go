package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent  // x, total
	TokenNumber // 42, 3.14
	TokenString // "hello"

	// Keywords
	TokenAnd    // and
	TokenClass  // class
	TokenElse   // else
	TokenFalse  // false
	TokenFor    // for
	TokenFun    // fun
	TokenIf     // if
	TokenNil    // nil
	TokenOr     // or
	TokenPrint  // print
	TokenReturn // return
	TokenSuper  // super
	TokenThis   // this
	TokenTrue   // true
	TokenVar    // var
	TokenWhile  // while

	// Operators
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /
	TokenAssign // =
	TokenEq     // ==
	TokenNot    // !
	TokenNe     // !=
	TokenLt     // <
	TokenLe     // <=
	TokenGt     // >
	TokenGe     // >=

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenIllegal:   "ILLEGAL",
	TokenIdent:     "IDENT",
	TokenNumber:    "NUMBER",
	TokenString:    "STRING",
	TokenAnd:       "and",
	TokenClass:     "class",
	TokenElse:      "else",
	TokenFalse:     "false",
	TokenFor:       "for",
	TokenFun:       "fun",
	TokenIf:        "if",
	TokenNil:       "nil",
	TokenOr:        "or",
	TokenPrint:     "print",
	TokenReturn:    "return",
	TokenSuper:     "super",
	TokenThis:      "this",
	TokenTrue:      "true",
	TokenVar:       "var",
	TokenWhile:     "while",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenAssign:    "=",
	TokenEq:        "==",
	TokenNot:       "!",
	TokenNe:        "!=",
	TokenLt:        "<",
	TokenLe:        "<=",
	TokenGt:        ">",
	TokenGe:        ">=",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenSemicolon: ";",
	TokenComma:     ",",
	TokenDot:       ".",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Lexeme string
	Value  any // float64 for numbers, unquoted text for strings, nil otherwise
	Line   int
	Column int
}

// IsEOF reports whether t is the end-of-input token.
func (t Token) IsEOF() bool {
	return t.Type == TokenEOF
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return fmt.Sprintf("%d:%d EOF", t.Line, t.Column)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Lexeme)
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
