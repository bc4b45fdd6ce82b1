package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raymyers/rift/pkg/ast"
	"github.com/raymyers/rift/pkg/lexer"
)

var (
	equalityOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenEq: ast.OpEq,
		lexer.TokenNe: ast.OpNe,
	}
	comparisonOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenGt: ast.OpGt,
		lexer.TokenGe: ast.OpGe,
		lexer.TokenLt: ast.OpLt,
		lexer.TokenLe: ast.OpLe,
	}
	termOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenMinus: ast.OpSub,
		lexer.TokenPlus:  ast.OpAdd,
	}
	factorOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenSlash: ast.OpDiv,
		lexer.TokenStar:  ast.OpMul,
	}
	unaryOps = map[lexer.TokenType]ast.UnaryOp{
		lexer.TokenNot:   ast.OpNot,
		lexer.TokenMinus: ast.OpNeg,
	}
)

func (p *Parser) expression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.equality()
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.leftAssoc(p.comparison, equalityOps)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.leftAssoc(p.term, comparisonOps)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.leftAssoc(p.factor, termOps)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.leftAssoc(p.unary, factorOps)
}

// leftAssoc parses operand (op operand)* and folds the result to the left,
// so 1 - 2 - 3 becomes (1 - 2) - 3.
func (p *Parser) leftAssoc(operand func() (ast.Expr, error), ops map[lexer.TokenType]ast.BinaryOp) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	isOp := func(tok lexer.Token) bool {
		_, ok := ops[tok.Type]
		return ok
	}
	for {
		opTok, ok := p.cur.Match(isOp)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Op: ops[opTok.Type], Left: left, Right: right, Pos: posOf(opTok)}
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	opTok, ok := p.cur.Match(is(lexer.TokenNot, lexer.TokenMinus))
	if !ok {
		return p.primary()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.Unary{Op: unaryOps[opTok.Type], Operand: operand, Pos: posOf(opTok)}, nil
}

var literalTypes = []lexer.TokenType{
	lexer.TokenFalse,
	lexer.TokenTrue,
	lexer.TokenNil,
	lexer.TokenNumber,
	lexer.TokenString,
}

func (p *Parser) primary() (ast.Expr, error) {
	if tok, ok := p.cur.Match(is(literalTypes...)); ok {
		value, err := literalValue(tok)
		if err != nil {
			return nil, err
		}
		return ast.Literal{Value: value, Pos: posOf(tok)}, nil
	}

	if open, ok := p.cur.Match(is(lexer.TokenLParen)); ok {
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenRParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{Inner: inner, Pos: posOf(open)}, nil
	}

	tok := p.cur.Peek()
	if tok.Type == lexer.TokenIllegal {
		return nil, newParseError(tok, "unexpected character")
	}
	return nil, newParseError(tok, "expected expression")
}

// literalValue extracts the value of a literal token. Scanned tokens carry
// their value already; hand-built ones fall back to the lexeme.
func literalValue(tok lexer.Token) (any, error) {
	switch tok.Type {
	case lexer.TokenFalse:
		return false, nil
	case lexer.TokenTrue:
		return true, nil
	case lexer.TokenNil:
		return nil, nil
	case lexer.TokenNumber:
		if v, ok := tok.Value.(float64); ok {
			return v, nil
		}
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, newParseError(tok, "invalid number literal")
		}
		return v, nil
	case lexer.TokenString:
		if v, ok := tok.Value.(string); ok {
			return v, nil
		}
		return strings.Trim(tok.Lexeme, `"`), nil
	}
	return nil, newParseError(tok, fmt.Sprintf("%s is not a literal", tok.Type))
}
