package parser

// ExprNode is the closed set of expression variants
type ExprNode interface {
	exprNode()
}

// VariableExpr references a bound variable ($amt)
type VariableExpr struct {
	Name     string // Bare name without the $ sigil
	Location SourceLocation
}

func (*VariableExpr) exprNode() {}

// LiteralExpr represents a literal value (int64, float64, string, bool)
type LiteralExpr struct {
	Value    interface{}
	Location SourceLocation
}

func (*LiteralExpr) exprNode() {}

// BinaryExpr represents a binary operation (a + b, a >= b, ...)
type BinaryExpr struct {
	Left     ExprNode
	Operator string
	Right    ExprNode
	Location SourceLocation
}

func (*BinaryExpr) exprNode() {}

// CallExpr represents a function invocation; arguments may nest arbitrarily
type CallExpr struct {
	Function  string
	Arguments []ExprNode
	Location  SourceLocation
}

func (*CallExpr) exprNode() {}
