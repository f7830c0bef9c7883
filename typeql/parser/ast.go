// Package parser transforms TypeQL function definition source into a typed
// abstract syntax tree. It owns the AST node definitions; downstream consumers
// (metadata extraction) only read the trees produced here.
package parser

import "github.com/typeql-tools/funcmeta/typeql/lexer"

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// TokenToLocation converts a token position to a SourceLocation
func TokenToLocation(tok lexer.Token) SourceLocation {
	return SourceLocation{
		File:   tok.File,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// FunctionDefinition is the root node for a single parsed function
type FunctionDefinition struct {
	Signature *SignatureNode
	Body      []StmtNode // Ordered match-block statements
	Return    ReturnNode
	Source    string // Verbatim source text of this definition
	Location  SourceLocation
}

// SignatureNode represents a function signature: name, arguments, output shape
type SignatureNode struct {
	Name     string
	Args     []*ArgumentNode // Declaration order is positional calling order
	Output   OutputNode
	Location SourceLocation
}

// ArgumentNode represents a single typed parameter
type ArgumentNode struct {
	Variable string // Bare variable name without the $ sigil
	Type     TypeRefNode
	Location SourceLocation
}

// TypeRefNode is the closed set of type reference variants
type TypeRefNode interface {
	typeRefNode()
}

// BuiltinType references a builtin value type (double, string, boolean, ...)
type BuiltinType struct {
	Token string // Normalized to lowercase
}

func (*BuiltinType) typeRefNode() {}

// LabelType references a schema-defined type by name
type LabelType struct {
	Name string
}

func (*LabelType) typeRefNode() {}

// OutputNode is the closed set of output shape variants
type OutputNode interface {
	outputNode()
}

// SingleOutput declares a function returning at most one row (1..N columns)
type SingleOutput struct {
	Types []TypeRefNode
}

func (*SingleOutput) outputNode() {}

// StreamOutput declares a set-valued function returning zero or more rows
type StreamOutput struct {
	Types []TypeRefNode
}

func (*StreamOutput) outputNode() {}

// Selector chooses among matching rows in a single-return clause
type Selector int

const (
	SelectorFirst Selector = iota
	SelectorLast
	SelectorAny
)

// String returns the selector keyword, or "" for SelectorAny
func (s Selector) String() string {
	switch s {
	case SelectorFirst:
		return "first"
	case SelectorLast:
		return "last"
	default:
		return ""
	}
}

// ReturnNode is the closed set of return clause variants
type ReturnNode interface {
	returnNode()
}

// SingleReturn returns at most one row of the bound variables
type SingleReturn struct {
	Selector Selector
	Vars     []string
	Location SourceLocation
}

func (*SingleReturn) returnNode() {}

// StreamReturn returns a set of rows of the bound variables
type StreamReturn struct {
	Vars     []string
	Location SourceLocation
}

func (*StreamReturn) returnNode() {}

// ReduceReturn applies an aggregation operator to one bound variable
type ReduceReturn struct {
	Operator string // sum, count, max, min, mean, median, std
	Variable string
	Location SourceLocation
}

func (*ReduceReturn) returnNode() {}

// StmtNode is the closed set of match-block statement variants
type StmtNode interface {
	stmtNode()
}

// LetStmt binds one or more variables to the value of an expression
type LetStmt struct {
	Vars     []string // Multi-assignment for tuple-returning calls
	Value    ExprNode
	Location SourceLocation
}

func (*LetStmt) stmtNode() {}

// PatternStmt is a data pattern: an optional subject variable and/or
// relation tuple followed by comma-separated constraints
type PatternStmt struct {
	Subject     string         // Bare variable name, "" if absent
	Relation    *RelationTuple // Leading (role: $var, ...) tuple, nil if absent
	Constraints []ConstraintNode
	Location    SourceLocation
}

func (*PatternStmt) stmtNode() {}

// ComparisonStmt is a standalone comparison constraint ($income >= $min)
type ComparisonStmt struct {
	Left     ExprNode
	Operator string
	Right    ExprNode
	Location SourceLocation
}

func (*ComparisonStmt) stmtNode() {}

// RelationTuple is a parenthesized list of role players
type RelationTuple struct {
	Roles []RolePlayer
}

// RolePlayer is a single role: player pair inside a relation tuple
type RolePlayer struct {
	Role   string
	Player ExprNode
}

// ConstraintNode is the closed set of pattern constraint variants
type ConstraintNode interface {
	constraintNode()
}

// IsaConstraint asserts the subject's type (isa income_source)
type IsaConstraint struct {
	TypeName string
}

func (*IsaConstraint) constraintNode() {}

// HasConstraint asserts attribute ownership (has amount $amt)
type HasConstraint struct {
	Attribute string
	Value     ExprNode
}

func (*HasConstraint) constraintNode() {}

// LinksConstraint asserts relation role players (links (friend: $p1, friend: $pm))
type LinksConstraint struct {
	Relation *RelationTuple
}

func (*LinksConstraint) constraintNode() {}
