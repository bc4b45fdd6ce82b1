package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer outputs the AST back in Rift source form
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints a complete program, one statement per line
func (p *Printer) PrintProgram(prog *Program) {
	for _, stmt := range prog.Stmts {
		p.PrintStmt(stmt)
	}
}

// PrintStmt prints a single statement followed by a newline
func (p *Printer) PrintStmt(stmt Stmt) {
	fmt.Fprintln(p.w, AcceptStmt[string](stmt, sourceFormatter{}))
}

type sourceFormatter struct{}

func (f sourceFormatter) VisitExprStmt(s ExprStmt) string {
	return AcceptExpr[string](s.Expr, f) + ";"
}

func (f sourceFormatter) VisitPrintStmt(s PrintStmt) string {
	return "print " + AcceptExpr[string](s.Expr, f) + ";"
}

func (f sourceFormatter) VisitLiteral(e Literal) string {
	return FormatValue(e.Value)
}

func (f sourceFormatter) VisitUnary(e Unary) string {
	return e.Op.String() + AcceptExpr[string](e.Operand, f)
}

func (f sourceFormatter) VisitBinary(e Binary) string {
	var b strings.Builder
	b.WriteString(AcceptExpr[string](e.Left, f))
	b.WriteString(" ")
	b.WriteString(e.Op.String())
	b.WriteString(" ")
	b.WriteString(AcceptExpr[string](e.Right, f))
	return b.String()
}

func (f sourceFormatter) VisitGrouping(e Grouping) string {
	return "(" + AcceptExpr[string](e.Inner, f) + ")"
}

// FormatValue renders a literal value the way it would be written in source
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
