// Package ast defines the abstract syntax tree for Rift programs
package ast

// Node is the base interface for all AST nodes
type Node interface {
	Position() Pos
	implNode()
}

// Expr is the interface for all expression nodes. The set of implementations
// is closed: Literal, Unary, Binary and Grouping.
type Expr interface {
	Node
	implExpr()
}

// Stmt is the interface for all statement nodes. The set of implementations
// is closed: ExprStmt and PrintStmt.
type Stmt interface {
	Node
	implStmt()
}

// Pos is a 1-based source position
type Pos struct {
	Line   int
	Column int
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	names := []string{"==", "!=", ">", ">=", "<", "<=", "+", "-", "*", "/"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNot UnaryOp = iota // !
	OpNeg                // -
)

func (op UnaryOp) String() string {
	names := []string{"!", "-"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Literal represents a constant. Value is one of float64, string, bool or nil.
type Literal struct {
	Value any
	Pos   Pos
}

// Unary represents a prefix operator applied to an operand
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Pos     Pos // position of the operator
}

// Binary represents an infix expression
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   Pos // position of the operator
}

// Grouping represents a parenthesized expression
type Grouping struct {
	Inner Expr
	Pos   Pos // position of '('
}

// ExprStmt is an expression evaluated for its effect
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

// PrintStmt represents print <expr>;
type PrintStmt struct {
	Expr Expr
	Pos  Pos // position of the print keyword
}

// Program is the AST root: the successfully parsed statements in source order
type Program struct {
	Stmts []Stmt
}

// Append adds a statement to the end of the program
func (p *Program) Append(s Stmt) {
	p.Stmts = append(p.Stmts, s)
}

func (e Literal) Position() Pos   { return e.Pos }
func (e Unary) Position() Pos     { return e.Pos }
func (e Binary) Position() Pos    { return e.Pos }
func (e Grouping) Position() Pos  { return e.Pos }
func (s ExprStmt) Position() Pos  { return s.Pos }
func (s PrintStmt) Position() Pos { return s.Pos }

// Marker methods for interface implementation
func (Literal) implNode() {}
func (Literal) implExpr() {}

func (Unary) implNode() {}
func (Unary) implExpr() {}

func (Binary) implNode() {}
func (Binary) implExpr() {}

func (Grouping) implNode() {}
func (Grouping) implExpr() {}

func (ExprStmt) implNode() {}
func (ExprStmt) implStmt() {}

func (PrintStmt) implNode() {}
func (PrintStmt) implStmt() {}
