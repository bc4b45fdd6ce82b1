package parser

import (
	"github.com/raymyers/rift/pkg/ast"
	"github.com/raymyers/rift/pkg/lexer"
)

func (p *Parser) statement() (ast.Stmt, error) {
	if printTok, ok := p.cur.Match(is(lexer.TokenPrint)); ok {
		return p.printStatement(printTok)
	}
	return p.expressionStatement()
}

// printStatement parses the rest of: print expr ;
func (p *Parser) printStatement(printTok lexer.Token) (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenSemicolon, "expected ';' after value"); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expr: value, Pos: posOf(printTok)}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	start := p.cur.Peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenSemicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: expr, Pos: posOf(start)}, nil
}
