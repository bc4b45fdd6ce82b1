// Package lexer implements the scanner that feeds the Rift parser. It is a
// thin collaborator: the parser consumes whatever terminated token slice it is
// given, and this package is only one way of producing it.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes Rift source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token sequence, always
// terminated by exactly one TokenEOF.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.skipComments()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		if l.pos < len(l.input) {
			tok = l.newToken(TokenIllegal, l.ch)
			break
		}
		tok.Type = TokenEOF
		tok.Lexeme = ""
		return tok
	case '+':
		tok = l.newToken(TokenPlus, l.ch)
	case '-':
		tok = l.newToken(TokenMinus, l.ch)
	case '*':
		tok = l.newToken(TokenStar, l.ch)
	case '/':
		tok = l.newToken(TokenSlash, l.ch)
	case '=':
		tok = l.twoCharToken('=', TokenEq, TokenAssign)
	case '!':
		tok = l.twoCharToken('=', TokenNe, TokenNot)
	case '<':
		tok = l.twoCharToken('=', TokenLe, TokenLt)
	case '>':
		tok = l.twoCharToken('=', TokenGe, TokenGt)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '.':
		tok = l.newToken(TokenDot, l.ch)
	case '"':
		return l.readString(tok)
	default:
		if isLetter(l.ch) {
			tok.Lexeme = l.readIdentifier()
			tok.Type = LookupIdent(tok.Lexeme)
			return tok
		} else if isDigit(l.ch) {
			tok.Lexeme = l.readNumber()
			tok.Type = TokenNumber
			tok.Value, _ = strconv.ParseFloat(tok.Lexeme, 64)
			return tok
		}
		if l.ch >= utf8.RuneSelf {
			return l.readIllegalRune(tok)
		}
		tok = l.newToken(TokenIllegal, l.ch)
	}

	l.readChar()
	return tok
}

// readIllegalRune consumes one whole UTF-8 sequence (or one invalid byte)
// as a single TokenIllegal. Columns stay byte based.
func (l *Lexer) readIllegalRune(tok Token) Token {
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	tok.Type = TokenIllegal
	tok.Lexeme = l.input[l.pos : l.pos+size]
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Lexeme: string(ch), Line: l.line, Column: l.column}
}

// twoCharToken returns long when the next character is next, short otherwise.
// The current character is left for NextToken to consume.
func (l *Lexer) twoCharToken(next byte, long, short TokenType) Token {
	if l.peekChar() == next {
		tok := Token{Type: long, Lexeme: string([]byte{l.ch, next}), Line: l.line, Column: l.column}
		l.readChar()
		return tok
	}
	return l.newToken(short, l.ch)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	for l.ch == '/' {
		if l.peekChar() == '/' {
			// Single-line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.skipWhitespace()
		} else if l.peekChar() == '*' {
			// Multi-line comment
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 && l.pos >= len(l.input) {
					break
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			l.skipWhitespace()
		} else {
			break
		}
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() string {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[pos:l.pos]
}

// readString scans a double-quoted string starting at the opening quote. An
// unterminated string becomes a TokenIllegal carrying the partial lexeme.
func (l *Lexer) readString(tok Token) Token {
	start := l.pos
	l.readChar() // consume opening quote
	for l.ch != '"' && l.pos < len(l.input) {
		if l.ch == '\\' {
			l.readChar() // skip escape char
		}
		l.readChar()
	}
	if l.pos >= len(l.input) {
		tok.Type = TokenIllegal
		tok.Lexeme = l.input[start:]
		return tok
	}
	l.readChar() // consume closing quote

	tok.Type = TokenString
	tok.Lexeme = l.input[start:l.pos]
	body := tok.Lexeme[1 : len(tok.Lexeme)-1]
	tok.Value = body
	if strings.ContainsRune(body, '\\') {
		if s, err := strconv.Unquote(tok.Lexeme); err == nil {
			tok.Value = s
		}
	}
	return tok
}

// isLetter accepts ASCII letters only; identifiers are ASCII
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
