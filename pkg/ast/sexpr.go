package ast

import "strings"

// Sexpr renders e in fully parenthesized prefix form, e.g. (+ 1 (* 2 3)).
// Groupings are kept explicit as (group ...).
func Sexpr(e Expr) string {
	return AcceptExpr[string](e, sexprFormatter{})
}

// SexprStmt renders a statement in prefix form, e.g. (print (+ 1 2))
func SexprStmt(s Stmt) string {
	return AcceptStmt[string](s, sexprFormatter{})
}

// SexprProgram renders every statement of prog on its own line
func SexprProgram(prog *Program) string {
	var b strings.Builder
	for _, s := range prog.Stmts {
		b.WriteString(SexprStmt(s))
		b.WriteByte('\n')
	}
	return b.String()
}

type sexprFormatter struct{}

func (f sexprFormatter) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(AcceptExpr[string](e, f))
	}
	b.WriteByte(')')
	return b.String()
}

func (f sexprFormatter) VisitExprStmt(s ExprStmt) string {
	return f.parenthesize("expr", s.Expr)
}

func (f sexprFormatter) VisitPrintStmt(s PrintStmt) string {
	return f.parenthesize("print", s.Expr)
}

func (f sexprFormatter) VisitLiteral(e Literal) string {
	return FormatValue(e.Value)
}

func (f sexprFormatter) VisitUnary(e Unary) string {
	return f.parenthesize(e.Op.String(), e.Operand)
}

func (f sexprFormatter) VisitBinary(e Binary) string {
	return f.parenthesize(e.Op.String(), e.Left, e.Right)
}

func (f sexprFormatter) VisitGrouping(e Grouping) string {
	return f.parenthesize("group", e.Inner)
}
