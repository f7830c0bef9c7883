package metadata

import (
	"fmt"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// maxTraversalDepth bounds tree recursion so a pathologically nested
// expression fails with a structured error instead of exhausting the stack
const maxTraversalDepth = 512

// DepthError reports a traversal that exceeded maxTraversalDepth
type DepthError struct {
	Depth    int    // Traversal depth at the point of failure
	NodeKind string // Kind of node being visited
}

// Error implements the error interface
func (e *DepthError) Error() string {
	return fmt.Sprintf("traversal depth %d exceeded at %s node", e.Depth, e.NodeKind)
}

// callWalker collects function call references in depth-first, left-to-right
// order with first-seen deduplication
type callWalker struct {
	seen  map[string]bool
	order []string
}

// collectCalls traverses every statement and the return clause looking for
// function invocations. Self-recursive calls are recorded like any other
// reference; cycle detection is a call graph query, not a collector concern.
func collectCalls(body []parser.StmtNode, ret parser.ReturnNode) ([]string, error) {
	w := &callWalker{
		seen:  make(map[string]bool),
		order: []string{},
	}

	for _, stmt := range body {
		if err := w.walkStmt(stmt, 0); err != nil {
			return nil, err
		}
	}

	// Return clause variants bind variables and operators only, so there is
	// nothing to collect there today. The parameter stays so the contract
	// covers the whole definition if the grammar grows call expressions in
	// return position.
	_ = ret

	return w.order, nil
}

func (w *callWalker) record(name string) {
	if !w.seen[name] {
		w.seen[name] = true
		w.order = append(w.order, name)
	}
}

func (w *callWalker) walkStmt(stmt parser.StmtNode, depth int) error {
	if depth > maxTraversalDepth {
		return &DepthError{Depth: depth, NodeKind: "statement"}
	}

	switch s := stmt.(type) {
	case *parser.LetStmt:
		return w.walkExpr(s.Value, depth+1)

	case *parser.PatternStmt:
		if s.Relation != nil {
			if err := w.walkRelation(s.Relation, depth+1); err != nil {
				return err
			}
		}
		for _, c := range s.Constraints {
			if err := w.walkConstraint(c, depth+1); err != nil {
				return err
			}
		}
		return nil

	case *parser.ComparisonStmt:
		if err := w.walkExpr(s.Left, depth+1); err != nil {
			return err
		}
		return w.walkExpr(s.Right, depth+1)

	default:
		return nil
	}
}

func (w *callWalker) walkConstraint(c parser.ConstraintNode, depth int) error {
	if depth > maxTraversalDepth {
		return &DepthError{Depth: depth, NodeKind: "constraint"}
	}

	switch cn := c.(type) {
	case *parser.HasConstraint:
		return w.walkExpr(cn.Value, depth+1)
	case *parser.LinksConstraint:
		return w.walkRelation(cn.Relation, depth+1)
	default:
		return nil
	}
}

func (w *callWalker) walkRelation(rel *parser.RelationTuple, depth int) error {
	if depth > maxTraversalDepth {
		return &DepthError{Depth: depth, NodeKind: "relation"}
	}

	for _, role := range rel.Roles {
		if err := w.walkExpr(role.Player, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *callWalker) walkExpr(expr parser.ExprNode, depth int) error {
	if depth > maxTraversalDepth {
		return &DepthError{Depth: depth, NodeKind: "expression"}
	}

	switch e := expr.(type) {
	case *parser.CallExpr:
		w.record(e.Function)
		for _, arg := range e.Arguments {
			if err := w.walkExpr(arg, depth+1); err != nil {
				return err
			}
		}
		return nil

	case *parser.BinaryExpr:
		if err := w.walkExpr(e.Left, depth+1); err != nil {
			return err
		}
		return w.walkExpr(e.Right, depth+1)

	default:
		// Variables and literals carry no calls
		return nil
	}
}
