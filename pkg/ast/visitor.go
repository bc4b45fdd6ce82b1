package ast

import "fmt"

// ExprVisitor handles every expression variant. Adding a variant to Expr
// breaks every implementation until it is handled.
type ExprVisitor[R any] interface {
	VisitLiteral(Literal) R
	VisitUnary(Unary) R
	VisitBinary(Binary) R
	VisitGrouping(Grouping) R
}

// StmtVisitor handles every statement variant
type StmtVisitor[R any] interface {
	VisitExprStmt(ExprStmt) R
	VisitPrintStmt(PrintStmt) R
}

// AcceptExpr dispatches e to the matching method of v
func AcceptExpr[R any](e Expr, v ExprVisitor[R]) R {
	switch e := e.(type) {
	case Literal:
		return v.VisitLiteral(e)
	case Unary:
		return v.VisitUnary(e)
	case Binary:
		return v.VisitBinary(e)
	case Grouping:
		return v.VisitGrouping(e)
	default:
		panic(fmt.Sprintf("ast: unknown expression %T", e))
	}
}

// AcceptStmt dispatches s to the matching method of v
func AcceptStmt[R any](s Stmt, v StmtVisitor[R]) R {
	switch s := s.(type) {
	case ExprStmt:
		return v.VisitExprStmt(s)
	case PrintStmt:
		return v.VisitPrintStmt(s)
	default:
		panic(fmt.Sprintf("ast: unknown statement %T", s))
	}
}
